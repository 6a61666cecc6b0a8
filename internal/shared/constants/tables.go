// Package constants centralizes database table names so migrations, models,
// and raw queries never drift apart.
package constants

const (
	TableLocations    = "locations"
	TableCounters     = "counters"
	TableTickets      = "tickets"
	TableTicketEvents = "ticket_events"
)
