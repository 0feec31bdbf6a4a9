package audit

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/domain"
)

type etcdEntry struct {
	Host      string        `json:"host"`
	Container string        `json:"container"`
	Action    domain.Action `json:"action"`
	ActorID   string        `json:"actor_id"`
	ActorName string        `json:"actor_name"`
	Outcome   string        `json:"outcome"`
	Error     string        `json:"error,omitempty"`
	Count     string        `json:"count,omitempty"`
	Line      string        `json:"line,omitempty"`
	Time      time.Time     `json:"time"`
}

func marshalEtcdValue(e Entry) (string, error) {
	wire := etcdEntry(e)
	b, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalEtcdValue(raw []byte) (Entry, error) {
	var wire etcdEntry
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Entry{}, fmt.Errorf("decode etcd value: %w", err)
	}
	return Entry(wire), nil
}
