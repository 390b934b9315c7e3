package domain

// View names a navigable dashboard destination.
type View string

const (
	ViewLogin       View = "login"
	ViewOverview    View = "overview"
	ViewAdmin       View = "admin"
	ViewManager     View = "manager"
	ViewFinancial   View = "financial"
	ViewAccounting  View = "accounting"
	ViewEngineering View = "engineering"
	ViewHR          View = "hr"
	ViewSVC         View = "svc"
	ViewCommercial  View = "commercial"
	ViewPurchasing  View = "purchasing"
)
