// Package rabbitmq publishes customer notifications to a fanout exchange.
// Consumers (mailer, SMS gateway) bind their own queues; the backend only
// fans the event out and never waits for delivery confirmation.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"traiteur/internal/core/domain/model/order"

	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// notificationMessage is the wire format every notification shares.
type notificationMessage struct {
	Event             string     `json:"event"`
	NumeroCommande    string     `json:"numero_commande"`
	CustomerID        *string    `json:"customer_id"`
	Statut            string     `json:"statut"`
	AdressePrestation string     `json:"adresse_prestation"`
	DatePrestation    string     `json:"date_prestation"`
	ModeContact       *string    `json:"mode_contact,omitempty"`
	Motif             *string    `json:"motif,omitempty"`
	RetourMaterielAt  *time.Time `json:"retour_materiel_at,omitempty"`
	SentAt            time.Time  `json:"sent_at"`
}

// Notifier implements ports.Notifier over a RabbitMQ fanout exchange.
type Notifier struct {
	channel  *amqp091.Channel
	exchange string
}

// NewNotifier declares the durable fanout exchange and returns a notifier
// publishing to it.
func NewNotifier(channel *amqp091.Channel, exchange string) (*Notifier, error) {
	err := channel.ExchangeDeclare(
		exchange, // name
		"fanout", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &Notifier{
		channel:  channel,
		exchange: exchange,
	}, nil
}

// OrderClosed notifies the customer that the order was cancelled or refused.
func (n *Notifier) OrderClosed(ctx context.Context, aggregate *order.Order) error {
	return n.publish(ctx, "commande.cloturee", aggregate)
}

// EquipmentReturnRequested notifies the customer that the loaned equipment
// must come back within the return window.
func (n *Notifier) EquipmentReturnRequested(ctx context.Context, aggregate *order.Order) error {
	return n.publish(ctx, "retour_materiel.demande", aggregate)
}

// EquipmentReturnOverdue reminds the customer that the return window has
// elapsed.
func (n *Notifier) EquipmentReturnOverdue(ctx context.Context, aggregate *order.Order) error {
	return n.publish(ctx, "retour_materiel.retard", aggregate)
}

func (n *Notifier) publish(ctx context.Context, event string, aggregate *order.Order) error {
	msg := notificationMessage{
		Event:             event,
		NumeroCommande:    aggregate.Numero(),
		Statut:            aggregate.Statut().String(),
		AdressePrestation: aggregate.AdressePrestation(),
		DatePrestation:    aggregate.DatePrestation().Format("2006-01-02"),
		RetourMaterielAt:  aggregate.RetourMaterielAt(),
		SentAt:            time.Now(),
	}

	if id := aggregate.CustomerID(); id != nil {
		raw := id.String()
		msg.CustomerID = &raw
	}
	if mode := aggregate.AnnulationModeContact(); mode != nil {
		raw := string(*mode)
		msg.ModeContact = &raw
	}
	msg.Motif = aggregate.AnnulationMotif()

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.channel.PublishWithContext(ctx,
		n.exchange, // exchange
		"",         // routing key
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			DeliveryMode: amqp091.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s for %s: %w", event, aggregate.Numero(), err)
	}

	return nil
}
