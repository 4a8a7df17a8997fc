package transition

// Name identifies a requested transition. Names are shared across entity
// types where one orchestrated operation moves several entities, e.g.
// AcceptQuote moves both the SalesQuote and its RFQ.
type Name string

// Creation operations. They have no source state and are only role gated.
const (
	CreateRFQ           Name = "createRfq"
	SubmitSupplierQuote Name = "submitSupplierQuote"
	Reorder             Name = "reorder"
)

// RFQ.
const (
	ReviewRFQ         Name = "reviewRfq"
	AssignToSuppliers Name = "assignToSuppliers"
	PublishQuote      Name = "publishQuote"
	CancelRFQ         Name = "cancelRfq"
)

// Quotes.
const (
	SelectSupplierQuote Name = "selectSupplierQuote"
	RejectSupplierQuote Name = "rejectSupplierQuote"
	AcceptQuote         Name = "acceptQuote"
	DeclineQuote        Name = "declineQuote"
	AttachPurchaseOrder Name = "attachPurchaseOrder"
	OverrideQuoteStatus Name = "overrideQuoteStatus"
	ConvertToSalesOrder Name = "convertToSalesOrder"
	IssuePurchaseOrder  Name = "issuePurchaseOrder"
)

// PurchaseOrder.
const (
	AcceptPurchaseOrder   Name = "acceptPurchaseOrder"
	StartProduction       Name = "startProduction"
	ShipPurchaseOrder     Name = "shipPurchaseOrder"
	DeliverPurchaseOrder  Name = "deliverPurchaseOrder"
	CancelPurchaseOrder   Name = "cancelPurchaseOrder"
	AttachSupplierInvoice Name = "attachSupplierInvoice"
	ArchivePurchaseOrder  Name = "archivePurchaseOrder"
	ReopenPurchaseOrder   Name = "reopenPurchaseOrder"
)

// SalesOrder. Each pipeline step has its own name so a request can never
// skip a stage.
const (
	StartMaterialProcurement Name = "startMaterialProcurement"
	StartManufacturing       Name = "startManufacturing"
	StartFinishing           Name = "startFinishing"
	StartQualityCheck        Name = "startQualityCheck"
	StartPacking             Name = "startPacking"
	ShipOrder                Name = "shipOrder"
	DeliverOrder             Name = "deliverOrder"
	MarkPaid                 Name = "markPaid"
	ArchiveSalesOrder        Name = "archiveSalesOrder"
	ReopenSalesOrder         Name = "reopenSalesOrder"
)

func (n Name) String() string {
	return string(n)
}

// ArchiveFor returns the archive transition of an archivable entity type.
func ArchiveFor(e EntityType) (Name, bool) {
	switch e {
	case PurchaseOrder:
		return ArchivePurchaseOrder, true
	case SalesOrder:
		return ArchiveSalesOrder, true
	default:
		return "", false
	}
}

// ReopenFor returns the reopen transition of an archivable entity type.
func ReopenFor(e EntityType) (Name, bool) {
	switch e {
	case PurchaseOrder:
		return ReopenPurchaseOrder, true
	case SalesOrder:
		return ReopenSalesOrder, true
	default:
		return "", false
	}
}
