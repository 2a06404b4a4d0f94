package service

import (
	"bytes"
	"context"

	"github.com/solsync/solaredge2state/internal/core/domain"
)

// fakeStore is an in-memory StateStore recording the calls the services
// make against it.
type fakeStore struct {
	declared map[string]domain.DataPointDefinition
	values   map[string][]byte
	meta     *domain.InstanceMetadata

	existsCalls  []string
	declareCalls []string
	writeCalls   []string

	existsErr  error
	declareErr error
	writeErr   map[string]error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		declared: map[string]domain.DataPointDefinition{},
		values:   map[string][]byte{},
		writeErr: map[string]error{},
	}
}

func (s *fakeStore) Exists(_ context.Context, _ domain.SiteContext, key string) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	s.existsCalls = append(s.existsCalls, key)
	_, ok := s.declared[key]
	return ok, nil
}

func (s *fakeStore) Declare(_ context.Context, _ domain.SiteContext, def domain.DataPointDefinition) error {
	if s.declareErr != nil {
		return s.declareErr
	}
	s.declareCalls = append(s.declareCalls, def.Key)
	s.declared[def.Key] = def
	return nil
}

func (s *fakeStore) WriteIfChanged(_ context.Context, _ domain.SiteContext, key string, value any, _ bool) (bool, error) {
	if err, ok := s.writeErr[key]; ok {
		return false, err
	}
	encoded, err := domain.EncodeValue(value)
	if err != nil {
		return false, err
	}
	if current, ok := s.values[key]; ok && bytes.Equal(current, encoded) {
		return false, nil
	}
	s.writeCalls = append(s.writeCalls, key)
	s.values[key] = encoded
	return true, nil
}

func (s *fakeStore) ReadInstanceMetadata(_ context.Context, _ domain.SiteContext) (*domain.InstanceMetadata, error) {
	if s.meta == nil {
		return nil, nil
	}
	m := *s.meta
	return &m, nil
}

func (s *fakeStore) WriteInstanceMetadata(_ context.Context, _ domain.SiteContext, meta domain.InstanceMetadata) error {
	s.meta = &meta
	return nil
}

type fakeMonitor struct {
	overview    *domain.EnergyOverview
	overviewErr error
	graph       *domain.PowerFlowGraph
	graphErr    error

	overviewCalls int
	flowCalls     int
}

func (m *fakeMonitor) GetOverview(_ context.Context, _ string) (*domain.EnergyOverview, error) {
	m.overviewCalls++
	if m.overviewErr != nil {
		return nil, m.overviewErr
	}
	return m.overview, nil
}

func (m *fakeMonitor) GetPowerFlow(_ context.Context, _ string) (*domain.PowerFlowGraph, error) {
	m.flowCalls++
	if m.graphErr != nil {
		return nil, m.graphErr
	}
	return m.graph, nil
}

type fakeAnnouncer struct {
	announced []string
	err       error
}

func (a *fakeAnnouncer) Announce(key string, _ any) error {
	if a.err != nil {
		return a.err
	}
	a.announced = append(a.announced, key)
	return nil
}
