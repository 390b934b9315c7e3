package handler

import (
	"fmt"

	"github.com/novavp/dashboard-gateway/internal/core/domain"
	"github.com/novavp/dashboard-gateway/internal/core/ports"
)

// staticCards are the department figures each view shows next to the live
// sales numbers.
var staticCards = map[domain.View][]card{
	domain.ViewOverview: {
		{"Total Revenue", "$1,200,000"},
		{"Active Users", "3,245"},
		{"Projects", "27"},
		{"Growth", "+12.5%"},
	},
	domain.ViewAdmin: {
		{"Total Users", "1,200"},
		{"Departments", "7"},
		{"Active Users", "950"},
		{"Growth", "+8.5%"},
	},
	domain.ViewManager: {
		{"Total Users", "1,200"},
		{"Departments", "7"},
		{"Growth", "+8.5%"},
	},
	domain.ViewAccounting: {
		{"Invoices", "1,200"},
		{"Receivables", "$95,000"},
		{"Payables", "$60,000"},
		{"Balance", "$35,000"},
	},
	domain.ViewEngineering: {
		{"Active Projects", "12"},
		{"Engineers", "48"},
		{"Tickets", "134"},
		{"Deployments", "22"},
	},
	domain.ViewHR: {
		{"Employees", "120"},
		{"New Hires", "8"},
		{"Turnover Rate", "5.2%"},
		{"Absenteeism", "2.1%"},
	},
	domain.ViewCommercial: {
		{"Leads", "320"},
		{"Opportunities", "87"},
		{"Deals Closed", "45"},
	},
}

// personalSalesViews show the visitor's own KPIs.
var personalSalesViews = map[domain.View]bool{
	domain.ViewOverview:   true,
	domain.ViewFinancial:  true,
	domain.ViewAccounting: true,
	domain.ViewCommercial: true,
	domain.ViewSVC:        true,
}

func personalCards(view domain.View, k *ports.PersonalKPIs) []card {
	switch view {
	case domain.ViewFinancial:
		return []card{
			{"Total Expenses", money(k.LatestTotalExpenses)},
			{"Net Profit", money(k.LatestNetProfit)},
		}
	case domain.ViewCommercial:
		return []card{{"Revenue", money(k.LatestRevenue)}}
	case domain.ViewSVC:
		return []card{{"Latest Sale", money(k.LatestSale)}}
	default:
		return []card{{"Sales", money(k.LatestSale)}}
	}
}

func aggregateCards(a *ports.AggregateSales) []card {
	return []card{
		{"Active Users", fmt.Sprintf("%d", a.Users)},
		{"Latest Sale", money(a.LatestSale)},
	}
}

func money(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
