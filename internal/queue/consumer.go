package queue

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const actividadLogPath = "logs/actividad.log"

// StartActividadConsumer connects to RabbitMQ, declares the durable
// usuario.registrado and tarea.creada queues, and appends every event to
// logs/actividad.log as a single human-readable line. It runs a reconnect
// loop with exponential backoff and never brings the server down: failed
// messages are rejected without requeue and processing continues.
func StartActividadConsumer(brokerURL string) {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(brokerURL)
		if err != nil {
			log.Printf("actividad-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			time.Sleep(backoff)
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := consumeLoop(conn); err != nil {
			log.Printf("actividad-consumer: consume loop ended: %v; reconnecting", err)
			_ = conn.Close()
			time.Sleep(2 * time.Second)
		}
	}
}

func consumeLoop(conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("actividad-consumer: set QoS failed: %v", err)
	}

	for _, name := range []string{QueueUsuarioRegistrado, QueueTareaCreada} {
		if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
			return fmt.Errorf("queue declare %s: %w", name, err)
		}
	}

	usuarios, err := ch.Consume(QueueUsuarioRegistrado, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", QueueUsuarioRegistrado, err)
	}
	tareas, err := ch.Consume(QueueTareaCreada, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume %s: %w", QueueTareaCreada, err)
	}

	for {
		var (
			d  amqp.Delivery
			ok bool
		)
		select {
		case d, ok = <-usuarios:
		case d, ok = <-tareas:
		}
		if !ok {
			return fmt.Errorf("delivery channel closed")
		}
		if err := handleDelivery(d); err != nil {
			log.Printf("actividad-consumer: handle message failed: %v", err)
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}
}

func handleDelivery(d amqp.Delivery) error {
	var line string
	switch d.RoutingKey {
	case QueueUsuarioRegistrado:
		var ev UsuarioRegistradoEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return err
		}
		line = fmt.Sprintf("%s usuario registrado id=%d nombre=%q email=%s",
			ev.RegistradoEn, ev.UsuarioID, ev.Nombre, ev.Email)
	case QueueTareaCreada:
		var ev TareaCreadaEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			return err
		}
		line = fmt.Sprintf("%s tarea creada id=%d usuario_id=%d descripcion=%q",
			ev.CreadaEn, ev.TareaID, ev.UsuarioID, ev.Descripcion)
	default:
		return fmt.Errorf("unknown queue %q", d.RoutingKey)
	}
	return appendLine(line)
}

func appendLine(line string) error {
	if err := os.MkdirAll(filepath.Dir(actividadLogPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(actividadLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = fmt.Fprintln(f, line)
	return err
}
