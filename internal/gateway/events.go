package gateway

import (
	"context"
	"encoding/base64"
	"time"
	"zeebeapi/internal/types"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"
)

const (
	EventDeployed = "deployed"
	EventStarted  = "started"
)

var enc, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
var dec, _ = zstd.NewReader(nil)

var timeNow = time.Now

var archive = EncodeDefinition

// Event is published after a successful deploy or run. It never carries credentials.
type Event struct {
	Kind      string         `json:"kind"`
	At        int64          `json:"at"`
	Endpoint  types.Redacted `json:"endpoint"`
	Name      string         `json:"name,omitempty"`
	ProcessID string         `json:"processId,omitempty"`
	Response  any            `json:"response,omitempty"`
	// Definition is the deployed document, zstd compressed and base64-url encoded.
	Definition string `json:"definition,omitempty"`
}

// EncodeDefinition compresses and base64-url encodes a process definition.
func EncodeDefinition(definition []byte) string {
	b := enc.EncodeAll(definition, make([]byte, 0, len(definition)))
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeDefinition reverses EncodeDefinition.
func DecodeDefinition(in string) ([]byte, error) {
	b, err := base64.RawURLEncoding.DecodeString(in)
	if err != nil {
		return []byte{}, err
	}
	out, err := dec.DecodeAll(b, nil)
	if err != nil {
		return []byte{}, err
	}
	return out, nil
}

// publish sends ev to the configured topic, archiving definition into it when not nil.
// Failures are logged only.
func (g *Gateway) publish(ctx context.Context, ev Event, definition []byte) {
	if g.Events == nil || g.EventsTopic == "" {
		return
	}
	if definition != nil {
		ev.Definition = archive(definition)
	}
	ev.At = timeNow().Unix()
	b, err := json.Marshal(ev)
	if err != nil {
		log.WithError(err).WithField("kind", ev.Kind).Error("marshal gateway event")
		return
	}
	if err := g.Events.PublishRaw(ctx, g.EventsTopic, b); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"kind":  ev.Kind,
			"topic": g.EventsTopic,
		}).Warn("publish gateway event")
	}
}
