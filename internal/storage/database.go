package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"Countdown/internal/models"
)

// ErrRunNotFound 记录不存在
var ErrRunNotFound = errors.New("run not found")

type Database struct {
	db *sql.DB
}

// NewDatabase 打开 (或创建) 历史数据库
func NewDatabase(path string) (*Database, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	database := &Database{db: db}
	if err := database.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}
	return database, nil
}

func (d *Database) initTables() error {
	// 创建倒计时记录表
	_, err := d.db.Exec(`
        CREATE TABLE IF NOT EXISTS runs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            start_time DATETIME NOT NULL,
            target_time DATETIME NOT NULL,
            launched_at DATETIME NOT NULL,
            expired_at DATETIME
        )
    `)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`CREATE INDEX IF NOT EXISTS idx_runs_launched_at ON runs(launched_at)`)
	return err
}

func (d *Database) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

// SaveRun 插入新记录并回填 ID
func (d *Database) SaveRun(run *models.Run) error {
	result, err := d.db.Exec(`
        INSERT INTO runs (start_time, target_time, launched_at, expired_at)
        VALUES (?, ?, ?, ?)
    `, run.Start, run.Target, run.LaunchedAt, nullTime(run.ExpiredAt))
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	run.ID = id
	return nil
}

// MarkExpired 记录过期时间. 已经记录过的不会被覆盖
func (d *Database) MarkExpired(id int64, at time.Time) error {
	result, err := d.db.Exec(`
        UPDATE runs SET expired_at = ?
        WHERE id = ? AND expired_at IS NULL
    `, at, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := d.GetRun(id); err != nil {
			return err
		}
	}
	return nil
}

func (d *Database) GetRun(id int64) (*models.Run, error) {
	row := d.db.QueryRow(`
        SELECT id, start_time, target_time, launched_at, expired_at
        FROM runs
        WHERE id = ?
    `, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	return run, err
}

// RecentRuns 按启动时间倒序返回最近的记录
func (d *Database) RecentRuns(limit int) ([]*models.Run, error) {
	rows, err := d.db.Query(`
        SELECT id, start_time, target_time, launched_at, expired_at
        FROM runs
        ORDER BY launched_at DESC, id DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*models.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRunStats 统计 since 之后启动的记录, since 为零值时统计全部
func (d *Database) GetRunStats(since time.Time) (*models.RunStats, error) {
	stats := &models.RunStats{}
	err := d.db.QueryRow(`
        SELECT
            COUNT(*) as total,
            COALESCE(SUM(CASE WHEN expired_at IS NOT NULL THEN 1 ELSE 0 END), 0) as expired
        FROM runs
        WHERE launched_at >= ?
    `, since).Scan(&stats.TotalRuns, &stats.ExpiredRuns)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*models.Run, error) {
	run := &models.Run{}
	var expired sql.NullTime
	if err := s.Scan(&run.ID, &run.Start, &run.Target, &run.LaunchedAt, &expired); err != nil {
		return nil, err
	}
	if expired.Valid {
		at := expired.Time
		run.ExpiredAt = &at
	}
	return run, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
