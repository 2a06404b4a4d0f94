package solaredge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/solsync/solaredge2state/internal/config"
	"github.com/solsync/solaredge2state/internal/core/domain"
	"github.com/solsync/solaredge2state/internal/core/port"

	"go.uber.org/zap"
)

const DefaultBaseURL = "https://monitoringapi.solaredge.com"

// Client reads a site's overview and power-flow snapshots from the cloud
// monitoring API. Every call carries a fixed timeout and is never retried
// within the same invocation; the external scheduler provides resilience.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, apiKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With(zap.String("component", "solaredge")),
	}
}

func (c *Client) GetOverview(ctx context.Context, siteID string) (*domain.EnergyOverview, error) {
	endpoint := fmt.Sprintf("/site/%s/overview.json", url.PathEscape(siteID))

	var env overviewEnvelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	if env.Overview == nil {
		return nil, fmt.Errorf("%s: %w", endpoint, domain.ErrMalformedResponse)
	}

	ov := env.Overview
	return &domain.EnergyOverview{
		LastUpdateTime:  ov.LastUpdateTime,
		CurrentPower:    ov.CurrentPower.Power,
		LifeTimeEnergy:  ov.LifeTimeData.Energy,
		LastYearEnergy:  ov.LastYearData.Energy,
		LastMonthEnergy: ov.LastMonthData.Energy,
		LastDayEnergy:   ov.LastDayData.Energy,
	}, nil
}

func (c *Client) GetPowerFlow(ctx context.Context, siteID string) (*domain.PowerFlowGraph, error) {
	endpoint := fmt.Sprintf("/site/%s/currentPowerFlow.json", url.PathEscape(siteID))

	var env powerFlowEnvelope
	if err := c.getJSON(ctx, endpoint, &env); err != nil {
		return nil, err
	}
	if env.SiteCurrentPowerFlow == nil {
		return nil, fmt.Errorf("%s: %w", endpoint, domain.ErrMalformedResponse)
	}

	pf := env.SiteCurrentPowerFlow
	nodes := map[string]domain.PowerFlowNode{}
	addNode := func(name string, node *flowNode) {
		if node == nil {
			return
		}
		nodes[name] = domain.PowerFlowNode{
			CurrentPower: node.CurrentPower,
			Status:       node.Status,
			ChargeLevel:  node.ChargeLevel,
		}
	}
	addNode(domain.NODE_GRID, pf.Grid)
	addNode(domain.NODE_LOAD, pf.Load)
	addNode(domain.NODE_PV, pf.PV)
	addNode(domain.NODE_STORAGE, pf.Storage)

	connections := make([]domain.Connection, 0, len(pf.Connections))
	for _, conn := range pf.Connections {
		connections = append(connections, domain.Connection{From: conn.From, To: conn.To})
	}

	return domain.NewPowerFlowGraph(pf.Unit, nodes, connections), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	reqURL := fmt.Sprintf("%s%s?api_key=%s", c.baseURL, endpoint, url.QueryEscape(c.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return &domain.TransportError{Endpoint: endpoint, Err: c.sanitize(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.TransportError{Endpoint: endpoint, Err: c.sanitize(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.TransportError{Endpoint: endpoint, Status: resp.StatusCode}
	}

	// an empty or truncated body on a 2xx is a hard failure, unlike a
	// well-formed body missing the expected object
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.TransportError{Endpoint: endpoint, Err: c.sanitize(err)}
	}
	return nil
}

// sanitize strips the raw API key from transport errors. url.Error keeps
// the full request URL, query string included, so anything that may have
// seen it goes through here before logging or wrapping.
func (c *Client) sanitize(err error) error {
	if err == nil {
		return nil
	}
	if c.apiKey == "" {
		return err
	}
	msg := err.Error()
	redacted := config.RedactKey(c.apiKey)
	clean := strings.ReplaceAll(msg, c.apiKey, redacted)
	clean = strings.ReplaceAll(clean, url.QueryEscape(c.apiKey), redacted)
	if clean != msg {
		return errors.New(clean)
	}
	return err
}

// ensure interface compliance
var _ port.MonitorClient = (*Client)(nil)
