package audit

import (
	"context"
	"fmt"

	"github.com/auto-dns/docker-discord-bot/internal/config"
	"github.com/auto-dns/docker-discord-bot/internal/util"
	"github.com/rs/zerolog"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type etcdClient interface {
	Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error)
	Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error)
	Grant(ctx context.Context, ttl int64) (*clientv3.LeaseGrantResponse, error)
	Close() error
}

type EtcdJournal struct {
	client   etcdClient
	cfg      config.AuditConfig
	hostname string
	logger   zerolog.Logger
}

func NewEtcdJournal(client etcdClient, cfg config.AuditConfig, hostname string, logger zerolog.Logger) *EtcdJournal {
	return &EtcdJournal{
		client:   client,
		cfg:      cfg,
		hostname: hostname,
		logger:   logger,
	}
}

// Record stores the entry under a lease so it expires after the configured TTL.
func (ej *EtcdJournal) Record(ctx context.Context, e Entry) error {
	value, err := marshalEtcdValue(e)
	if err != nil {
		return err
	}
	lease, err := ej.client.Grant(ctx, ej.cfg.TTL)
	if err != nil {
		return fmt.Errorf("failed to create lease: %w", err)
	}
	key := entryKey(ej.cfg.PathPrefix, ej.hostname, e.Time)
	if _, err := ej.client.Put(ctx, key, value, clientv3.WithLease(lease.ID)); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	ej.logger.Debug().Msgf("[etcd_journal] Recorded %s", key)
	return nil
}

// Recent returns up to limit entries for this host, newest first.
func (ej *EtcdJournal) Recent(ctx context.Context, limit int64) ([]Entry, error) {
	resp, err := ej.client.Get(ctx, hostPrefix(ej.cfg.PathPrefix, ej.hostname),
		clientv3.WithPrefix(),
		clientv3.WithSort(clientv3.SortByKey, clientv3.SortDescend),
		clientv3.WithLimit(limit),
	)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		e, err := unmarshalEtcdValue(kv.Value)
		if err != nil {
			ej.logger.Warn().Err(err).Msgf("[etcd_journal] Could not parse key %s", kv.Key)
			continue
		}
		entries = append(entries, e)
	}
	return util.Take(entries, int(limit)), nil
}

func (ej *EtcdJournal) Close() error {
	return ej.client.Close()
}
