package database

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/dnldd/trendwatch/shared"
	"github.com/google/uuid"
	rqlitehttp "github.com/rqlite/rqlite-go-http"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	// SQL statements.
	createSessionTableSQL = "CREATE TABLE IF NOT EXISTS session (id TEXT PRIMARY KEY, " +
		"label TEXT, isactive INTEGER, starttime INTEGER)"
	createInstrumentTableSQL = "CREATE TABLE IF NOT EXISTS instrument (sessionid TEXT, " +
		"symbol TEXT, timeframe TEXT, lasttrend TEXT, lastprice TEXT, lastupdated INTEGER, " +
		"PRIMARY KEY (sessionid, symbol, timeframe))"
	createSignalTableSQL = "CREATE TABLE IF NOT EXISTS signal (id TEXT PRIMARY KEY, " +
		"sessionid TEXT, symbol TEXT, signaltype TEXT, description TEXT, timestamp INTEGER)"
	createSessionSQL = "INSERT INTO session(id, label, isactive, starttime) VALUES(?,?,?,?)"
	findActiveSessionSQL = "SELECT id, label, isactive, starttime FROM session " +
		"WHERE isactive = 1 ORDER BY starttime DESC LIMIT 1"
	sessionActiveSQL     = "SELECT id FROM session WHERE id = ? AND isactive = 1"
	deactivateSessionSQL = "UPDATE session SET isactive = 0 WHERE id = ?"
	upsertInstrumentSQL  = "INSERT INTO instrument(sessionid, symbol, timeframe, lasttrend, " +
		"lastprice, lastupdated) VALUES(?,?,?,?,?,?) ON CONFLICT(sessionid, symbol, timeframe) " +
		"DO UPDATE SET lasttrend = excluded.lasttrend, lastprice = excluded.lastprice, " +
		"lastupdated = excluded.lastupdated"
	appendSignalSQL = "INSERT INTO signal(id, sessionid, symbol, signaltype, description, " +
		"timestamp) VALUES(?,?,?,?,?,?)"
	listSignalsSQL = "SELECT id, sessionid, symbol, signaltype, description, timestamp " +
		"FROM signal WHERE sessionid = ? ORDER BY timestamp DESC LIMIT ?"
)

// DatabaseConfig is the configuration for the database.
type DatabaseConfig struct {
	// Endpoint represents the database connection endpoint.
	Endpoint string
	// User is the database user.
	User string
	// Pass is the database user pass.
	Pass string
	// Logger is the database logger.
	Logger *zerolog.Logger
}

// Database represents the database connection.
type Database struct {
	cfg    *DatabaseConfig
	client *rqlitehttp.Client
}

// Ensure the database implements the SessionStore interface.
var _ shared.SessionStore = (*Database)(nil)

// NewDatabase initializes a new database connection.
func NewDatabase(ctx context.Context, cfg *DatabaseConfig) (*Database, error) {
	httpc := &http.Client{Timeout: time.Second * 5}
	client, err := rqlitehttp.NewClient(cfg.Endpoint, httpc)
	if err != nil {
		return nil, fmt.Errorf("creating database client: %w", err)
	}

	client.SetBasicAuth(cfg.User, cfg.Pass)

	db := &Database{
		cfg:    cfg,
		client: client,
	}

	err = db.bootstrap(ctx)
	if err != nil {
		return nil, fmt.Errorf("bootstrapping database: %w", err)
	}

	return db, nil
}

// bootstrap initializes the database.
func (db *Database) bootstrap(ctx context.Context) error {
	_, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{SQL: createSessionTableSQL},
		{SQL: createInstrumentTableSQL},
		{SQL: createSignalTableSQL},
	}, &rqlitehttp.ExecuteOptions{
		Transaction: true,
		Timings:     true,
	})
	if err != nil {
		return err
	}

	return nil
}

// execute runs the provided statement and surfaces statement level errors.
func (db *Database) execute(ctx context.Context, sql string, params ...any) error {
	resp, err := db.client.Execute(ctx, rqlitehttp.SQLStatements{
		{
			SQL:              sql,
			PositionalParams: params,
		},
	}, &rqlitehttp.ExecuteOptions{Transaction: true, Timings: true})
	if err != nil {
		return err
	}

	has, idx, errStr := resp.HasError()
	if has {
		return fmt.Errorf("executing statement: %d -> %s", idx, errStr)
	}

	return nil
}

// rowString fetches the provided column of the row as a string.
func rowString(row map[string]any, column string) string {
	str, _ := row[column].(string)
	return str
}

// rowInt64 fetches the provided column of the row as an int64.
func rowInt64(row map[string]any, column string) int64 {
	switch value := row[column].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	default:
		return 0
	}
}

// parseSession parses a monitoring session from the provided row.
func (db *Database) parseSession(row map[string]any) *shared.MonitoringSession {
	id := rowString(row, "id")
	if id == "" {
		db.cfg.Logger.Error().Msgf("unexpected session row shape: %s", spew.Sdump(row))
		return nil
	}

	return &shared.MonitoringSession{
		ID:        id,
		Label:     rowString(row, "label"),
		IsActive:  rowInt64(row, "isactive") == 1,
		StartTime: time.Unix(rowInt64(row, "starttime"), 0).UTC(),
	}
}

// CreateSession creates a new active monitoring session.
func (db *Database) CreateSession(ctx context.Context, label string) (*shared.MonitoringSession, error) {
	session := &shared.MonitoringSession{
		ID:        uuid.NewString(),
		Label:     label,
		IsActive:  true,
		StartTime: time.Now().UTC(),
	}

	err := db.execute(ctx, createSessionSQL, session.ID, session.Label, 1, session.StartTime.Unix())
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return session, nil
}

// ActiveSession fetches the most recently started active session, or nil
// if no session is active.
func (db *Database) ActiveSession(ctx context.Context) (*shared.MonitoringSession, error) {
	resp, err := db.client.QuerySingle(ctx, findActiveSessionSQL)
	if err != nil {
		return nil, fmt.Errorf("fetching active session: %w", err)
	}

	results := resp.GetQueryResultsAssoc()
	if len(results) == 0 || len(results[0].Rows) == 0 {
		return nil, nil
	}

	return db.parseSession(results[0].Rows[0]), nil
}

// SessionActive checks whether the session with the provided id is still
// active.
func (db *Database) SessionActive(ctx context.Context, id string) (bool, error) {
	resp, err := db.client.QuerySingle(ctx, sessionActiveSQL, id)
	if err != nil {
		return false, fmt.Errorf("checking session %s active: %w", id, err)
	}

	return len(resp.GetQueryResultsAssoc()) > 0, nil
}

// UpsertInstrumentState creates or updates the persisted state of the
// provided pair for the session. Writes key on (session, symbol,
// timeframe), concurrent tasks writing distinct rows do not contend.
func (db *Database) UpsertInstrumentState(ctx context.Context, sessionID string, pair shared.Pair, trend shared.Trend, price float64) error {
	lastPrice := decimal.NewFromFloat(price).Round(2).String()

	err := db.execute(ctx, upsertInstrumentSQL, sessionID, pair.Symbol,
		pair.Timeframe.APICode(), trend.String(), lastPrice, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("upserting instrument state for %s: %w", pair, err)
	}

	return nil
}

// AppendSignalEvent appends a signal event for the provided pair to the
// session's signal log.
func (db *Database) AppendSignalEvent(ctx context.Context, sessionID string, pair shared.Pair, signal shared.Crossover, description string) error {
	err := db.execute(ctx, appendSignalSQL, uuid.NewString(), sessionID, pair.Symbol,
		signal.String(), description, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("appending signal event for %s: %w", pair, err)
	}

	return nil
}

// ListSignalEvents fetches up to limit of the session's most recent signal
// events, newest first.
func (db *Database) ListSignalEvents(ctx context.Context, sessionID string, limit int) ([]shared.SignalEvent, error) {
	resp, err := db.client.QuerySingle(ctx, listSignalsSQL, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing signal events: %w", err)
	}

	results := resp.GetQueryResultsAssoc()
	var rows []map[string]any
	if len(results) > 0 {
		rows = results[0].Rows
	}
	events := make([]shared.SignalEvent, 0, len(rows))
	for _, row := range rows {
		id := rowString(row, "id")
		if id == "" {
			db.cfg.Logger.Error().Msgf("unexpected signal row shape: %s", spew.Sdump(row))
			continue
		}

		events = append(events, shared.SignalEvent{
			ID:          id,
			SessionID:   rowString(row, "sessionid"),
			Symbol:      rowString(row, "symbol"),
			SignalType:  rowString(row, "signaltype"),
			Description: rowString(row, "description"),
			Timestamp:   time.Unix(rowInt64(row, "timestamp"), 0).UTC(),
		})
	}

	return events, nil
}

// DeactivateSession marks the session with the provided id inactive.
func (db *Database) DeactivateSession(ctx context.Context, sessionID string) error {
	err := db.execute(ctx, deactivateSessionSQL, sessionID)
	if err != nil {
		return fmt.Errorf("deactivating session %s: %w", sessionID, err)
	}

	return nil
}
