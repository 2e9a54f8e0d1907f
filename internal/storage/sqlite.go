package storage

import (
	"database/sql"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	Close() error
}

type Store struct{ db DB }

// MonthlyBar is one persisted month-end close.
type MonthlyBar struct {
	Date  time.Time
	Close float64
}

// UsageStats aggregates how often one command was used.
type UsageStats struct {
	Command string
	Count   int
}

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS monthly_bars(
		ticker TEXT, start_year INTEGER, bar_date INTEGER, close REAL,
		PRIMARY KEY(ticker, start_year, bar_date)
	)`); err != nil {
		return err
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS bar_fetches(
		ticker TEXT, start_year INTEGER, fetched_at INTEGER,
		PRIMARY KEY(ticker, start_year)
	)`); err != nil {
		return err
	}
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS command_log(
		chat_id INTEGER, command TEXT, args TEXT, ts INTEGER
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// SaveBars replaces the cached bar set for (ticker, startYear) and records
// the fetch time.
func (s *Store) SaveBars(ticker string, startYear int, bars []MonthlyBar, fetchedAt time.Time) error {
	if _, err := s.db.Exec(`DELETE FROM monthly_bars WHERE ticker=? AND start_year=?`, ticker, startYear); err != nil {
		return err
	}
	for _, b := range bars {
		if _, err := s.db.Exec(`INSERT INTO monthly_bars(ticker,start_year,bar_date,close) VALUES(?,?,?,?)`,
			ticker, startYear, b.Date.Unix(), b.Close); err != nil {
			return err
		}
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO bar_fetches(ticker,start_year,fetched_at) VALUES(?,?,?)`,
		ticker, startYear, fetchedAt.Unix())
	return err
}

// LoadBars returns the cached bar set for (ticker, startYear) with its fetch
// time. A zero fetch time means nothing is cached.
func (s *Store) LoadBars(ticker string, startYear int) ([]MonthlyBar, time.Time, error) {
	rows, err := s.db.Query(`SELECT fetched_at FROM bar_fetches WHERE ticker=? AND start_year=?`, ticker, startYear)
	if err != nil {
		return nil, time.Time{}, err
	}
	var fetchedUnix int64
	found := false
	for rows.Next() {
		if err := rows.Scan(&fetchedUnix); err == nil {
			found = true
		}
	}
	rows.Close()
	if !found {
		return nil, time.Time{}, nil
	}

	rows, err = s.db.Query(`SELECT bar_date, close FROM monthly_bars WHERE ticker=? AND start_year=? ORDER BY bar_date ASC`,
		ticker, startYear)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer rows.Close()
	var bars []MonthlyBar
	for rows.Next() {
		var ts int64
		var close float64
		if err := rows.Scan(&ts, &close); err != nil {
			return nil, time.Time{}, err
		}
		bars = append(bars, MonthlyBar{Date: time.Unix(ts, 0), Close: close})
	}
	return bars, time.Unix(fetchedUnix, 0), nil
}

func (s *Store) LogCommand(chatID int64, command, args string, ts int64) error {
	_, err := s.db.Exec(`INSERT INTO command_log(chat_id,command,args,ts) VALUES(?,?,?,?)`,
		chatID, command, args, ts)
	return err
}

// CommandUsage counts commands issued since the given unix timestamp.
func (s *Store) CommandUsage(since int64) (map[string]*UsageStats, error) {
	rows, err := s.db.Query(`SELECT command, COUNT(*) FROM command_log WHERE ts>=? GROUP BY command`, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]*UsageStats{}
	for rows.Next() {
		var cmd string
		var n int
		if err := rows.Scan(&cmd, &n); err != nil {
			return nil, err
		}
		out[cmd] = &UsageStats{Command: cmd, Count: n}
	}
	return out, nil
}
