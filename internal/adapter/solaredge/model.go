package solaredge

// Wire models for the monitoring API. Node keys in the power-flow payload
// arrive with inconsistent casing depending on installation; the json
// decoder's case-insensitive field matching absorbs that here, edge
// endpoints are normalized later when the graph is built.

type overviewEnvelope struct {
	Overview *overviewPayload `json:"overview"`
}

type overviewPayload struct {
	LastUpdateTime string       `json:"lastUpdateTime"`
	CurrentPower   currentPower `json:"currentPower"`
	LifeTimeData   energyValue  `json:"lifeTimeData"`
	LastYearData   energyValue  `json:"lastYearData"`
	LastMonthData  energyValue  `json:"lastMonthData"`
	LastDayData    energyValue  `json:"lastDayData"`
}

type currentPower struct {
	Power float64 `json:"power"`
}

type energyValue struct {
	Energy float64 `json:"energy"`
}

type powerFlowEnvelope struct {
	SiteCurrentPowerFlow *powerFlowPayload `json:"siteCurrentPowerFlow"`
}

type powerFlowPayload struct {
	Unit        string           `json:"unit"`
	Grid        *flowNode        `json:"GRID"`
	Load        *flowNode        `json:"LOAD"`
	PV          *flowNode        `json:"PV"`
	Storage     *flowNode        `json:"STORAGE"`
	Connections []flowConnection `json:"connections"`
}

type flowNode struct {
	CurrentPower float64 `json:"currentPower"`
	Status       string  `json:"status"`
	ChargeLevel  float64 `json:"chargeLevel"`
}

type flowConnection struct {
	From string `json:"from"`
	To   string `json:"to"`
}
