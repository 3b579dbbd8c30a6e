// Package advisors provides the concrete domain agents of the cabinet: each
// fixes an identity triple on top of agent.Base and adds structured
// extraction operations that turn completions into typed business records.
package advisors

// ClientProfile describes a client dossier used by mission and strategy
// prompts.
type ClientProfile struct {
	Name        string   `json:"name"`
	Sector      string   `json:"sector"`
	Headcount   int      `json:"headcount,omitempty"`
	Revenue     float64  `json:"revenue,omitempty"`
	LegalForm   string   `json:"legal_form,omitempty"`
	PainPoints  []string `json:"pain_points,omitempty"`
	CurrentFees float64  `json:"current_fees,omitempty"`
}

// FinancialSnapshot is the serialized financial position embedded in
// forecasting and comparison prompts.
type FinancialSnapshot struct {
	Period        string  `json:"period"`
	Revenue       float64 `json:"revenue"`
	Expenses      float64 `json:"expenses"`
	NetIncome     float64 `json:"net_income"`
	Cash          float64 `json:"cash"`
	Receivables   float64 `json:"receivables,omitempty"`
	Payables      float64 `json:"payables,omitempty"`
	GrossMarginPc float64 `json:"gross_margin_pct,omitempty"`
}

// MissionProposal is an advisory mission suggested by the counsel agent.
type MissionProposal struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Deliverable  string   `json:"deliverable,omitempty"`
	EstimatedFee float64  `json:"estimated_fee,omitempty"`
	Priority     string   `json:"priority,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}

// Scenario is one forecast trajectory produced by the forecaster agent.
type Scenario struct {
	Name               string  `json:"name"`
	Assumption         string  `json:"assumption"`
	RevenueGrowthPct   float64 `json:"revenue_growth_pct"`
	ProjectedNetIncome float64 `json:"projected_net_income"`
	Probability        string  `json:"probability,omitempty"`
	Commentary         string  `json:"commentary,omitempty"`
}

// ODEntry is one journal entry (écriture d'opérations diverses) submitted to
// anomaly review.
type ODEntry struct {
	ID      string  `json:"id"`
	Date    string  `json:"date"`
	Account string  `json:"account"`
	Label   string  `json:"label"`
	Debit   float64 `json:"debit"`
	Credit  float64 `json:"credit"`
}

// Anomaly is a suspicious entry flagged by the review agent.
type Anomaly struct {
	EntryID    string `json:"entry_id"`
	Severity   string `json:"severity"`
	Reason     string `json:"reason"`
	Suggestion string `json:"suggestion,omitempty"`
}

// SectorComparison relates a client's metrics to sector averages.
type SectorComparison struct {
	Sector     string   `json:"sector"`
	Position   string   `json:"position"`
	Strengths  []string `json:"strengths,omitempty"`
	Weaknesses []string `json:"weaknesses,omitempty"`
	Commentary string   `json:"commentary,omitempty"`
}

// StrategicPlan is the client strategy agent's recommendation.
type StrategicPlan struct {
	Horizon    string   `json:"horizon"`
	Objectives []string `json:"objectives"`
	Actions    []string `json:"actions"`
	Risks      []string `json:"risques,omitempty"`
}

// WarehouseRow is one row of the statistics dataset queried by the warehouse
// agent.
type WarehouseRow struct {
	Client string  `json:"client"`
	Period string  `json:"period"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
}

// WarehouseAnswer is the structured result of a warehouse query.
type WarehouseAnswer struct {
	Answer  string   `json:"answer"`
	Figures []string `json:"figures,omitempty"`
	Caveats []string `json:"caveats,omitempty"`
}
