package mqttpub

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/solsync/solaredge2state/internal/config"
	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const defaultOpTimeout = 5 * time.Second

func OptsFromConfig(cfg config.MQTTConfig) *mqtt.ClientOptions {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Host, cfg.Port))
	opts.SetClientID(fmt.Sprintf("solaredge2state_%d", rand.Intn(1000)))
	if cfg.Username != "" && cfg.Password != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	return opts
}

// Announcer mirrors committed state changes to MQTT so downstream consumers
// get push semantics without polling the store. Values are retained, so a
// late subscriber sees the last committed value per key.
type Announcer struct {
	client    mqtt.Client
	baseTopic string
	timeout   time.Duration
	logger    *zap.Logger
}

func NewAnnouncer(cfg config.MQTTConfig, logger *zap.Logger) *Announcer {
	return &Announcer{
		client:    mqtt.NewClient(OptsFromConfig(cfg)),
		baseTopic: cfg.BaseTopic,
		timeout:   defaultOpTimeout,
		logger:    logger.With(zap.String("component", "mqttpub")),
	}
}

func (a *Announcer) Connect() error {
	token := a.client.Connect()
	if !token.WaitTimeout(a.timeout) {
		return errors.New("MQTT connect timed out")
	}
	return token.Error()
}

func (a *Announcer) Announce(key string, value any) error {
	payload, err := domain.EncodeValue(value)
	if err != nil {
		return err
	}
	token := a.client.Publish(StateTopic(a.baseTopic, key), 0, true, payload)
	if !token.WaitTimeout(a.timeout) {
		return errors.New("MQTT publish timed out")
	}
	return token.Error()
}

func (a *Announcer) Close() {
	a.client.Disconnect(uint(defaultOpTimeout.Milliseconds()))
}

func StateTopic(baseTopic, key string) string {
	return fmt.Sprintf("%s/state/%s", baseTopic, key)
}

// ensure interface compliance
var _ port.Announcer = (*Announcer)(nil)
