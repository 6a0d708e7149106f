package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/kilianp07/hotelprice/core/events"
	"github.com/kilianp07/hotelprice/core/model"
	"github.com/kilianp07/hotelprice/core/monitoring"
	"github.com/kilianp07/hotelprice/infra/logger"
	"github.com/kilianp07/hotelprice/internal/eventbus"
)

// Quote is the payload announced for every successful prediction.
type Quote struct {
	MessageID string `json:"messageId"`
	RequestID string `json:"requestId,omitempty"`
	HotelID   string `json:"hotelId"`
	BasePrice int64  `json:"basePrice"`
	Model     string `json:"model"`
	Fallback  bool   `json:"fallback"`
	CheckIn   string `json:"checkInDate"`
	Timestamp int64  `json:"timestamp"`
}

// anonymousHotel names the topic segment used for requests without a hotel id.
const anonymousHotel = "_"

// Announcer publishes quote summaries to an MQTT broker.
type Announcer struct {
	cli        pahoClient
	prefix     string
	qos        byte
	retain     bool
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

// NewAnnouncer connects to the broker described by cfg.
func NewAnnouncer(cfg Config) (*Announcer, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := NewClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	log := logger.New("mqtt_announcer")
	opts.OnConnect = func(paho.Client) {
		log.Infof("MQTT connected to %s", cfg.Broker)
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Errorf("connection lost: %v", err)
	}
	opts.OnReconnecting = func(paho.Client, *paho.ClientOptions) {
		log.Warnf("reconnecting to MQTT broker")
	}
	c := newMQTTClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Announcer{
		cli:        c,
		prefix:     cfg.TopicPrefix,
		qos:        cfg.QoS,
		retain:     cfg.Retain,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        log,
	}, nil
}

// Topic returns the topic a quote for hotelID is published on.
func Topic(prefix, hotelID string) string {
	if hotelID == "" {
		hotelID = anonymousHotel
	}
	return prefix + "/" + hotelID
}

// Announce publishes a quote for a successful prediction event. Other
// outcomes are ignored.
func (a *Announcer) Announce(ev events.PredictionEvent) error {
	if ev.Outcome != events.OutcomeSuccess {
		return nil
	}
	q := Quote{
		MessageID: uuid.NewString(),
		RequestID: ev.RequestID,
		HotelID:   ev.HotelID,
		BasePrice: ev.BasePrice,
		Model:     ev.Model,
		Fallback:  ev.Fallback,
		CheckIn:   ev.CheckIn.Format(model.DateLayout),
		Timestamp: ev.Time.UnixMilli(),
	}
	payload, err := json.Marshal(q)
	if err != nil {
		return err
	}
	topic := Topic(a.prefix, ev.HotelID)
	var publishErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		token := a.cli.Publish(topic, a.qos, a.retain, payload)
		token.Wait()
		publishErr = token.Error()
		if publishErr == nil {
			a.log.Debugf("announced quote %s on %s", q.MessageID, topic)
			return nil
		}
		a.log.Warnf("publish attempt %d failed: %v", attempt+1, publishErr)
		if attempt < a.maxRetries {
			time.Sleep(a.backoff * time.Duration(1<<attempt))
		}
	}
	monitoring.CaptureException(publishErr, map[string]string{
		"module":   "mqtt",
		"hotel_id": ev.HotelID,
	})
	return fmt.Errorf("announce %s: %w", topic, publishErr)
}

// Run announces prediction events from bus until ctx is canceled or the bus
// closes. The returned channel is closed once the loop has exited.
func (a *Announcer) Run(ctx context.Context, bus *eventbus.Bus[events.PredictionEvent]) <-chan struct{} {
	done := make(chan struct{})
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := a.Announce(ev); err != nil {
					a.log.Errorf("%v", err)
				}
			}
		}
	}()
	return done
}

// Disconnect gracefully closes the MQTT connection.
func (a *Announcer) Disconnect() {
	if a.cli != nil && a.cli.IsConnected() {
		a.cli.Disconnect(250)
	}
}
