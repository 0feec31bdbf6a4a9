package audit

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/auto-dns/docker-discord-bot/internal/config"
	"github.com/auto-dns/docker-discord-bot/internal/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/etcd/api/v3/mvccpb"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type fakeEtcd struct {
	kvs       map[string]string
	grants    []int64
	grantErr  error
	getPrefix string
	closed    bool
}

func newFakeEtcd() *fakeEtcd {
	return &fakeEtcd{kvs: map[string]string{}}
}

func (f *fakeEtcd) Get(ctx context.Context, key string, opts ...clientv3.OpOption) (*clientv3.GetResponse, error) {
	f.getPrefix = key
	var keys []string
	for k := range f.kvs {
		if len(k) >= len(key) && k[:len(key)] == key {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	resp := &clientv3.GetResponse{}
	for _, k := range keys {
		resp.Kvs = append(resp.Kvs, &mvccpb.KeyValue{Key: []byte(k), Value: []byte(f.kvs[k])})
	}
	return resp, nil
}

func (f *fakeEtcd) Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error) {
	f.kvs[key] = val
	return &clientv3.PutResponse{}, nil
}

func (f *fakeEtcd) Grant(ctx context.Context, ttl int64) (*clientv3.LeaseGrantResponse, error) {
	if f.grantErr != nil {
		return nil, f.grantErr
	}
	f.grants = append(f.grants, ttl)
	return &clientv3.LeaseGrantResponse{ID: clientv3.LeaseID(len(f.grants)), TTL: ttl}, nil
}

func (f *fakeEtcd) Close() error {
	f.closed = true
	return nil
}

var auditCfg = config.AuditConfig{PathPrefix: "/bot/audit/", TTL: 3600}

func TestEtcdJournal_RecordAndRecent(t *testing.T) {
	ctx := context.Background()
	cli := newFakeEtcd()
	j := NewEtcdJournal(cli, auditCfg, "gamebox", zerolog.Nop())

	base := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	actor := domain.Actor{ID: "1", Name: "alice"}
	for i, action := range []domain.Action{domain.ActionStart, domain.ActionStop, domain.ActionRestart} {
		ev := domain.ActionEvent{Actor: actor, ContainerName: "web", Action: action}
		require.NoError(t, j.Record(ctx, NewEntry("gamebox", ev, nil, base.Add(time.Duration(i)*time.Second))))
	}
	failed := domain.ActionEvent{Actor: actor, ContainerName: "nope", Action: domain.ActionStart}
	require.NoError(t, j.Record(ctx, NewEntry("gamebox", failed, errors.New("No such container: nope"), base.Add(time.Hour))))

	// another host's entry must not leak into this host's history
	cli.kvs["/bot/audit/otherbox/00000000000000000001"] = `{"host":"otherbox"}`

	assert.Equal(t, []int64{3600, 3600, 3600, 3600}, cli.grants)
	assert.Contains(t, cli.kvs, entryKey("/bot/audit", "gamebox", base))

	got, err := j.Recent(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "/bot/audit/gamebox/", cli.getPrefix)
	require.Len(t, got, 3)
	assert.Equal(t, "nope", got[0].Container)
	assert.Equal(t, OutcomeError, got[0].Outcome)
	assert.Equal(t, "No such container: nope", got[0].Error)
	assert.Equal(t, domain.ActionRestart, got[1].Action)
	assert.Equal(t, OutcomeOK, got[1].Outcome)
	assert.Equal(t, domain.ActionStop, got[2].Action)
	assert.Equal(t, base.Add(time.Second), got[2].Time)
}

func TestEtcdJournal_SkipsCorruptValues(t *testing.T) {
	cli := newFakeEtcd()
	cli.kvs["/bot/audit/gamebox/00000000000000000002"] = "not json"
	cli.kvs["/bot/audit/gamebox/00000000000000000001"] = `{"container":"db","action":"stop","outcome":"ok"}`

	got, err := NewEtcdJournal(cli, auditCfg, "gamebox", zerolog.Nop()).Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "db", got[0].Container)
}

func TestEtcdJournal_LeaseFailure(t *testing.T) {
	cli := newFakeEtcd()
	cli.grantErr = errors.New("etcdserver: no leader")
	j := NewEtcdJournal(cli, auditCfg, "gamebox", zerolog.Nop())

	err := j.Record(context.Background(), Entry{Time: time.Now()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no leader")
	assert.Empty(t, cli.kvs)

	require.NoError(t, j.Close())
	assert.True(t, cli.closed)
}

func TestEntryKeyOrdering(t *testing.T) {
	early := entryKey("/p", "h", time.Unix(9, 0))
	late := entryKey("/p", "h", time.Unix(10, 0))
	assert.Less(t, early, late)
}
