package service

import (
	"github.com/solsync/solaredge2state/internal/core/domain"
)

// Derive scans the connection set exactly once and computes the directional
// flags. Absence of a matching edge means false; there is no unknown state.
func Derive(graph *domain.PowerFlowGraph) domain.DerivedSignals {
	var signals domain.DerivedSignals
	for _, c := range graph.Connections {
		if c.From == domain.NODE_LOAD && c.To == domain.NODE_GRID {
			signals.FeedToGrid = true
		}
		if c.From == domain.NODE_LOAD && c.To == domain.NODE_STORAGE {
			signals.FeedToBattery = true
		}
	}
	return signals
}

// Interpret maps one power-flow snapshot to its data-point values:
// passthrough readings for every node (absent nodes contribute their
// defined defaults) plus the two derived flags. Numeric values carry the
// source unit unchanged.
func Interpret(graph *domain.PowerFlowGraph) []domain.ValueUpdate {
	signals := Derive(graph)

	grid := graph.Node(domain.NODE_GRID)
	load := graph.Node(domain.NODE_LOAD)
	pv := graph.Node(domain.NODE_PV)
	storage := graph.Node(domain.NODE_STORAGE)

	return []domain.ValueUpdate{
		{Key: domain.DP_POWER_UNIT, Value: graph.Unit},
		{Key: domain.DP_GRID_POWER_FLOW, Value: grid.CurrentPower},
		{Key: domain.DP_HOUSE_POWER_FLOW, Value: load.CurrentPower},
		{Key: domain.DP_PV_POWER_FLOW, Value: pv.CurrentPower},
		{Key: domain.DP_PV_STATUS, Value: pv.Status},
		{Key: domain.DP_BATTERY_STATUS, Value: storage.Status},
		{Key: domain.DP_BATTERY_POWER_FLOW, Value: storage.CurrentPower},
		{Key: domain.DP_BATTERY_CHARGE_LEVEL, Value: storage.ChargeLevel},
		{Key: domain.DP_FEED_TO_GRID, Value: signals.FeedToGrid},
		{Key: domain.DP_FEED_TO_BATTERY, Value: signals.FeedToBattery},
	}
}

// OverviewValues maps the overview payload to its data-point values.
func OverviewValues(ov *domain.EnergyOverview) []domain.ValueUpdate {
	return []domain.ValueUpdate{
		{Key: domain.DP_LAST_UPDATE_TIME, Value: ov.LastUpdateTime},
		{Key: domain.DP_CURRENT_POWER, Value: ov.CurrentPower},
		{Key: domain.DP_LIFETIME_ENERGY, Value: ov.LifeTimeEnergy},
		{Key: domain.DP_LAST_YEAR_ENERGY, Value: ov.LastYearEnergy},
		{Key: domain.DP_LAST_MONTH_ENERGY, Value: ov.LastMonthEnergy},
		{Key: domain.DP_LAST_DAY_ENERGY, Value: ov.LastDayEnergy},
	}
}
