package models

// Client represents a row of the clients table. AccountIDs is aggregated from client_accounts.
type Client struct {
	ClientID   string   `db:"client_id"`
	Name       string   `db:"name"`
	AccountIDs []string `db:"account_ids"`
	AuditFields
}
