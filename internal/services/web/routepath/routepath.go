// Package routepath stores canonical HTTP paths for web modules.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Home   = "/"
	Login  = "/login"
	Logout = "/logout"

	Mechanics    = "/mechanics"
	Parts        = "/parts"
	Services     = "/services"
	Suppliers    = "/suppliers"
	Expenses     = "/expenses"
	Transactions = "/transactions"
	Performance  = "/performance"

	TransactionsNew = Transactions + "/new"

	APIPrefix                 = "/api/"
	APIHealth                 = "/api/health"
	APIExpenses               = "/api/expenses"
	APIMechanicPerformancePat = "/api/mechanics/{id}/performance"

	StaticPrefix     = "/static/"
	StaticStylesheet = StaticPrefix + "app.css"
)

// Record returns the edit route of one record under collection.
func Record(collection, id string) string {
	return collection + "/" + escapeSegment(id)
}

// RecordDelete returns the delete route of one record under collection.
func RecordDelete(collection, id string) string {
	return Record(collection, id) + "/delete"
}

// Receipt returns the printable receipt route of a transaction.
func Receipt(transactionID string) string {
	return Record(Transactions, transactionID) + "/receipt"
}

// APIMechanicPerformance returns the JSON performance route of a mechanic.
func APIMechanicPerformance(mechanicID string) string {
	return "/api/mechanics/" + escapeSegment(mechanicID) + "/performance"
}

// WithMonth appends ?month=key to path.
func WithMonth(path, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return path
	}
	return path + "?month=" + url.QueryEscape(key)
}

// IsSection reports whether current sits under the navigation entry section.
func IsSection(current, section string) bool {
	if section == Home {
		return current == Home
	}
	return current == section || strings.HasPrefix(current, section+"/")
}

func escapeSegment(raw string) string {
	return url.PathEscape(strings.TrimSpace(raw))
}
