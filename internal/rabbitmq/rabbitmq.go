package rabbitmq

import (
	"context"
	"sync"
	"time"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const reconnectDelay = 3 * time.Second

// Topology is the exchange, queue and binding a Channel publishes to and consumes from.
type Topology struct {
	Exchange   string
	Queue      string
	RoutingKey string
}

// declare is idempotent, so it runs on every (re)opened channel.
func (t Topology) declare(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(t.Exchange, amqp.ExchangeDirect, true, false, false, false, nil)
	if err != nil {
		return err
	}
	_, err = ch.QueueDeclare(t.Queue, true, false, false, false, nil)
	if err != nil {
		return err
	}
	return ch.QueueBind(t.Queue, t.RoutingKey, t.Exchange, false, nil)
}

// closer is shared by Connection and Channel: Close stops their reconnect loops.
type closer struct {
	closing   chan struct{}
	closeOnce sync.Once
}

func newCloser() closer {
	return closer{closing: make(chan struct{})}
}

func (c *closer) markClosing() bool {
	marked := false
	c.closeOnce.Do(func() {
		close(c.closing)
		marked = true
	})
	return marked
}

func (c *closer) isClosing() bool {
	select {
	case <-c.closing:
		return true
	default:
		return false
	}
}

// wait returns false if Close was called while waiting.
func (c *closer) wait() bool {
	select {
	case <-time.After(reconnectDelay):
		return true
	case <-c.closing:
		return false
	}
}

// Connection redials the broker whenever the underlying connection drops.
type Connection struct {
	closer
	url  string
	log  logging.Logger
	lock sync.RWMutex
	conn *amqp.Connection
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	if log == nil {
		return nil, e.NewNilArgumentError("log")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{closer: newCloser(), url: url, log: log, conn: conn}
	go connection.watch()
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch() {
	for {
		reason, ok := <-c.current().NotifyClose(make(chan *amqp.Error, 1))
		if !ok || c.isClosing() {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}

		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))
		for {
			if !c.wait() {
				return
			}
			conn, err := amqp.Dial(c.url)
			if err != nil {
				c.log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
				continue
			}
			c.lock.Lock()
			c.conn = conn
			c.lock.Unlock()
			c.log.Info(context.Background(), "RabbitMQ reconnect success.")
			break
		}
	}
}

func (c *Connection) Close() error {
	if !c.markClosing() {
		return amqp.ErrClosed
	}
	return c.current().Close()
}

// Channel opens a channel with the topology declared. The channel is reopened,
// and the topology redeclared, after the broker closes it.
func (c *Connection) Channel(topology Topology) (*Channel, error) {
	channel := &Channel{closer: newCloser(), conn: c, topology: topology, log: c.log}
	ch, err := channel.open()
	if err != nil {
		return nil, err
	}
	channel.ch = ch

	go channel.watch()
	return channel, nil
}

type Channel struct {
	closer
	conn     *Connection
	topology Topology
	log      logging.Logger
	lock     sync.RWMutex
	ch       *amqp.Channel
}

func (ch *Channel) open() (*amqp.Channel, error) {
	c, err := ch.conn.current().Channel()
	if err != nil {
		return nil, err
	}
	// One unacknowledged email at a time per mailer.
	if err := c.Qos(1, 0, false); err != nil {
		c.Close()
		return nil, err
	}
	if err := ch.topology.declare(c); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch() {
	for {
		reason, ok := <-ch.current().NotifyClose(make(chan *amqp.Error, 1))
		if ch.isClosing() {
			return
		}
		if ok {
			ch.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))
		}

		for {
			if !ch.wait() {
				return
			}
			c, err := ch.open()
			if err != nil {
				ch.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
				continue
			}
			ch.lock.Lock()
			ch.ch = c
			ch.lock.Unlock()
			ch.log.Info(context.Background(), "Channel recreate success.", logging.Entry("queue", ch.topology.Queue))
			break
		}
	}
}

func (ch *Channel) Topology() Topology {
	return ch.topology
}

// Publish sends a message to the topology's exchange with its routing key.
func (ch *Channel) Publish(ctx context.Context, msg amqp.Publishing) error {
	return ch.current().PublishWithContext(ctx, ch.topology.Exchange, ch.topology.RoutingKey, false, false, msg)
}

// Consume delivers messages from the topology's queue with manual acknowledgement,
// resubscribing after the channel is recreated. The returned channel is closed after Close.
func (ch *Channel) Consume(consumerTag string) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for {
			d, err := ch.current().Consume(ch.topology.Queue, consumerTag, false, false, false, false, nil)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				if !ch.wait() {
					return
				}
				continue
			}

			for msg := range d {
				select {
				case deliveries <- msg:
				case <-ch.closing:
					return
				}
			}

			if !ch.wait() {
				ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", ch.topology.Queue))
				return
			}
		}
	}()

	return deliveries, nil
}

func (ch *Channel) Close() error {
	if !ch.markClosing() {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}
