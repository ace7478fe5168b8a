package bridge

import (
	"net/url"
	"strings"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"
)

// Handler is the callback when a message is received.
type Handler func(topic string, payload []byte)

// Queue wraps the MQTT client with a topic prefix.
type Queue struct {
	Client      paho.Client
	TopicPrefix string
}

// NewQueue creates a Queue from a broker URL. The URL path becomes
// the topic prefix, e.g. mqtt://host:1883/lab maps topic t to lab/t.
func NewQueue(brokerURL, clientID string) (*Queue, error) {
	u, err := url.Parse(brokerURL)
	if err != nil {
		return nil, err
	}
	server := u.Scheme
	if server == "" || server == "mqtt" {
		server = "tcp"
	}
	server += "://" + u.Host
	prefix := strings.TrimPrefix(u.Path, "/")
	opts := paho.NewClientOptions().
		AddBroker(server).
		SetClientID(clientID).
		SetAutoReconnect(true)
	return &Queue{
		Client:      paho.NewClient(opts),
		TopicPrefix: prefix,
	}, nil
}

// Connect connects to the broker and blocks until done.
func (q *Queue) Connect() error {
	token := q.Client.Connect()
	token.Wait()
	return token.Error()
}

// Close disconnects from the broker.
func (q *Queue) Close() {
	q.Client.Disconnect(100)
}

// Pub publishes to a prefixed topic.
func (q *Queue) Pub(topic string, payload []byte, retain bool) error {
	token := q.Client.Publish(q.Topic(topic), 0, retain, payload)
	token.Wait()
	return token.Error()
}

// Sub subscribes to a prefixed topic pattern.
func (q *Queue) Sub(topic string, handler Handler) error {
	full := q.Topic(topic)
	token := q.Client.Subscribe(full, 0, func(_ paho.Client, msg paho.Message) {
		glog.V(4).Infof("recv %s (%d bytes)", msg.Topic(), len(msg.Payload()))
		handler(q.Strip(msg.Topic()), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

// Topic prepends the prefix.
func (q *Queue) Topic(topic string) string {
	if q.TopicPrefix == "" {
		return topic
	}
	return q.TopicPrefix + "/" + topic
}

// Strip removes the prefix from a received topic.
func (q *Queue) Strip(topic string) string {
	if q.TopicPrefix == "" {
		return topic
	}
	return strings.TrimPrefix(topic, q.TopicPrefix+"/")
}

// MatchTopic matches topic with an MQTT pattern.
func MatchTopic(topic, pattern string) bool {
	tokensT, tokensP := strings.Split(topic, "/"), strings.Split(pattern, "/")
	if len(tokensP) > len(tokensT) {
		return false
	}
	for i, token := range tokensP {
		if token == "+" {
			continue
		}
		if token == "#" && i+1 == len(tokensP) {
			break
		}
		if token != tokensT[i] {
			return false
		}
	}
	return true
}
