package sink

import (
	"context"
	"encoding/json"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/bemasher/rtlwx/parse"
)

// DefaultSubject is where packets are published unless configured otherwise.
const DefaultSubject = "sdr.packets"

// Publisher is the part of *nats.Conn used by the NATS sink.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes each packet as a JSON object on a subject.
type NATS struct {
	conn    Publisher
	subject string
	close   func() error
}

func NewNATS(p Publisher, subject string) *NATS {
	if subject == "" {
		subject = DefaultSubject
	}
	return &NATS{conn: p, subject: subject}
}

// DialNATS connects to the server at url. The connection reconnects on its
// own, publishing while disconnected is buffered by the client.
func DialNATS(url, subject string) (*NATS, error) {
	nc, err := nats.Connect(url,
		nats.Name("rtlwx"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warnf("nats disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Infof("nats reconnected to %s", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, errors.Wrapf(err, "connect to nats %s", url)
	}

	s := NewNATS(nc, subject)
	s.close = nc.Drain
	return s, nil
}

func (s *NATS) Send(_ context.Context, pkt *parse.Packet) error {
	data, err := json.Marshal(pkt)
	if err != nil {
		return err
	}
	return s.conn.Publish(s.subject, data)
}

func (s *NATS) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}
