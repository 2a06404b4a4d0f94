package domain

type ValueType string

const (
	VALUE_TYPE_NUMBER  ValueType = "number"
	VALUE_TYPE_STRING  ValueType = "string"
	VALUE_TYPE_BOOLEAN ValueType = "boolean"
)

const (
	DP_LAST_UPDATE_TIME  = "lastUpdateTime"
	DP_CURRENT_POWER     = "currentPower"
	DP_LIFETIME_ENERGY   = "lifeTimeData"
	DP_LAST_YEAR_ENERGY  = "lastYearData"
	DP_LAST_MONTH_ENERGY = "lastMonthData"
	DP_LAST_DAY_ENERGY   = "lastDayData"

	DP_POWER_UNIT           = "powerUnit"
	DP_GRID_POWER_FLOW      = "gridPowerFlow"
	DP_HOUSE_POWER_FLOW     = "housePowerFlow"
	DP_PV_POWER_FLOW        = "pvPowerFlow"
	DP_PV_STATUS            = "pvStatus"
	DP_BATTERY_STATUS       = "batteryStatus"
	DP_BATTERY_POWER_FLOW   = "batteryPowerFlow"
	DP_BATTERY_CHARGE_LEVEL = "batteryChargeLevel"
	DP_FEED_TO_GRID         = "feedToGrid"
	DP_FEED_TO_BATTERY      = "feedToBattery"
)

// DataPointDefinition is one entry of the fixed catalog of typed value slots
// this program owns in the store.
type DataPointDefinition struct {
	Key      string    `json:"key"`
	Type     ValueType `json:"type"`
	Unit     string    `json:"unit,omitempty"`
	Role     string    `json:"role"`
	ReadOnly bool      `json:"readOnly"`
}

// BaseCatalog covers the overview endpoint. Overview power is reported
// in W and energy aggregates in Wh; units are fixed attributes of the
// declaration, never computed per value.
func BaseCatalog() []DataPointDefinition {
	return []DataPointDefinition{
		{Key: DP_LAST_UPDATE_TIME, Type: VALUE_TYPE_STRING, Role: "date", ReadOnly: true},
		{Key: DP_CURRENT_POWER, Type: VALUE_TYPE_NUMBER, Unit: "W", Role: "value.power", ReadOnly: true},
		{Key: DP_LIFETIME_ENERGY, Type: VALUE_TYPE_NUMBER, Unit: "Wh", Role: "value.energy", ReadOnly: true},
		{Key: DP_LAST_YEAR_ENERGY, Type: VALUE_TYPE_NUMBER, Unit: "Wh", Role: "value.energy", ReadOnly: true},
		{Key: DP_LAST_MONTH_ENERGY, Type: VALUE_TYPE_NUMBER, Unit: "Wh", Role: "value.energy", ReadOnly: true},
		{Key: DP_LAST_DAY_ENERGY, Type: VALUE_TYPE_NUMBER, Unit: "Wh", Role: "value.energy", ReadOnly: true},
	}
}

// PowerFlowCatalog covers the currentPowerFlow endpoint, which reports in kW.
func PowerFlowCatalog() []DataPointDefinition {
	return []DataPointDefinition{
		{Key: DP_POWER_UNIT, Type: VALUE_TYPE_STRING, Role: "text", ReadOnly: true},
		{Key: DP_GRID_POWER_FLOW, Type: VALUE_TYPE_NUMBER, Unit: "kW", Role: "value.power", ReadOnly: true},
		{Key: DP_HOUSE_POWER_FLOW, Type: VALUE_TYPE_NUMBER, Unit: "kW", Role: "value.power", ReadOnly: true},
		{Key: DP_PV_POWER_FLOW, Type: VALUE_TYPE_NUMBER, Unit: "kW", Role: "value.power", ReadOnly: true},
		{Key: DP_PV_STATUS, Type: VALUE_TYPE_STRING, Role: "text", ReadOnly: true},
		{Key: DP_BATTERY_STATUS, Type: VALUE_TYPE_STRING, Role: "text", ReadOnly: true},
		{Key: DP_BATTERY_POWER_FLOW, Type: VALUE_TYPE_NUMBER, Unit: "kW", Role: "value.power", ReadOnly: true},
		{Key: DP_BATTERY_CHARGE_LEVEL, Type: VALUE_TYPE_NUMBER, Unit: "%", Role: "value.battery", ReadOnly: true},
		{Key: DP_FEED_TO_GRID, Type: VALUE_TYPE_BOOLEAN, Role: "indicator", ReadOnly: true},
		{Key: DP_FEED_TO_BATTERY, Type: VALUE_TYPE_BOOLEAN, Role: "indicator", ReadOnly: true},
	}
}

// ActiveCatalog is the set of definitions this run is responsible for.
// The power-flow entries are gated on the site feature flag read at
// invocation start; a flag flip takes effect on the next run.
func ActiveCatalog(site SiteContext) []DataPointDefinition {
	catalog := BaseCatalog()
	if site.HasPowerFlowFeature {
		catalog = append(catalog, PowerFlowCatalog()...)
	}
	return catalog
}
