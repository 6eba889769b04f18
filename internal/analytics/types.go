package analytics

type BuyerTrends struct {
	Spend        float64 `json:"spend"`
	Orders       float64 `json:"orders"`
	RFQs         float64 `json:"rfqs"`
	ResponseTime float64 `json:"responseTime"`
	Savings      float64 `json:"savings"`
}

type BuyerKPIs struct {
	TotalSpend      float64     `json:"totalSpend"`
	TotalOrders     int         `json:"totalOrders"`
	RFQsSent        int         `json:"rfqsSent"`
	AvgResponseTime float64     `json:"avgResponseTime"` // hours
	SavingsVsMarket float64     `json:"savingsVsMarket"`
	Currency        string      `json:"currency"`
	Trends          BuyerTrends `json:"trends"`
}

// SupplierSpend is one entry of the spend breakdown. Category holds the
// supplier display name, or "Others" for the overflow entry.
type SupplierSpend struct {
	SupplierID    string  `json:"supplierId,omitempty"`
	Category      string  `json:"category"`
	Amount        float64 `json:"amount"`
	Percentage    float64 `json:"percentage"`
	OrderCount    int     `json:"orderCount"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

type TopSupplier struct {
	SupplierID     string  `json:"supplierId"`
	Name           string  `json:"name"`
	TotalOrders    int     `json:"totalOrders"`
	TotalSpend     float64 `json:"totalSpend"`
	OnTimeDelivery int     `json:"onTimeDelivery"`
	QualityScore   float64 `json:"qualityScore"`
	ResponseTime   float64 `json:"responseTime"`
	WinRate        float64 `json:"winRate"`
}

type RFQFunnel struct {
	RFQsSent              int     `json:"rfqsSent"`
	QuotesReceived        int     `json:"quotesReceived"`
	OrdersPlaced          int     `json:"ordersPlaced"`
	RFQToQuoteRate        float64 `json:"rfqToQuoteRate"`
	QuoteToOrderRate      float64 `json:"quoteToOrderRate"`
	OverallConversionRate float64 `json:"overallConversionRate"`
}

type TimelinePoint struct {
	Date   string  `json:"date"`
	Spend  float64 `json:"spend"`
	Orders int     `json:"orders"`
	RFQs   int     `json:"rfqs"`
}

type BuyerOverview struct {
	KPIs            BuyerKPIs       `json:"kpis"`
	SpendByCategory []SupplierSpend `json:"spendByCategory"`
	TopSuppliers    []TopSupplier   `json:"topSuppliers"`
	RFQFunnel       RFQFunnel       `json:"rfqFunnel"`
	Timeline        []TimelinePoint `json:"timeline"`
	Period          Window          `json:"period"`
}

type SellerTrends struct {
	Revenue float64 `json:"revenue"`
	Orders  float64 `json:"orders"`
	Buyers  float64 `json:"buyers"`
}

type SellerKPIs struct {
	TotalRevenue  float64      `json:"totalRevenue"`
	TotalOrders   int          `json:"totalOrders"`
	NewBuyers     int          `json:"newBuyers"`
	WinRate       int          `json:"winRate"`
	AvgOrderValue float64      `json:"avgOrderValue"`
	Currency      string       `json:"currency"`
	Trends        SellerTrends `json:"trends"`
}

type CategoryRevenue struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type TopProduct struct {
	ItemID  string  `json:"itemId"`
	Name    string  `json:"name"`
	SKU     string  `json:"sku"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type FunnelStage struct {
	Stage      string `json:"stage"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type ConversionFunnel struct {
	RFQsReceived int           `json:"rfqsReceived"`
	QuotesSent   int           `json:"quotesSent"`
	OrdersWon    int           `json:"ordersWon"`
	Stages       []FunnelStage `json:"stages"`
}

type RegionShare struct {
	Region     string `json:"region"`
	Orders     int    `json:"orders"`
	Percentage int    `json:"percentage"`
}

type TopBuyer struct {
	BuyerID    string  `json:"buyerId"`
	Name       string  `json:"name"`
	TotalSpend float64 `json:"totalSpend"`
	Orders     int     `json:"orders"`
}

type PaymentSummary struct {
	Received             int     `json:"received"`
	Confirmed            int     `json:"confirmed"`
	AvgConfirmationHours float64 `json:"avgConfirmationHours"`
}

type LifecycleMetrics struct {
	OutstandingReceivables float64        `json:"outstandingReceivables"`
	AvgDeliveryDays        float64        `json:"avgDeliveryDays"`
	AvgPaymentDelayDays    float64        `json:"avgPaymentDelayDays"`
	FulfillmentRate        int            `json:"fulfillmentRate"`
	TotalOrders            int            `json:"totalOrders"`
	OrdersByStatus         map[string]int `json:"ordersByStatus"`
	TopBuyers              []TopBuyer     `json:"topBuyers"`
	Payments               PaymentSummary `json:"payments"`
}

type SellerOverview struct {
	KPIs               SellerKPIs        `json:"kpis"`
	RevenueByCategory  []CategoryRevenue `json:"revenueByCategory"`
	TopProducts        []TopProduct      `json:"topProducts"`
	ConversionFunnel   ConversionFunnel  `json:"conversionFunnel"`
	RegionDistribution []RegionShare     `json:"regionDistribution"`
	LifecycleMetrics   LifecycleMetrics  `json:"lifecycleMetrics"`
	Period             Window            `json:"period"`
}
