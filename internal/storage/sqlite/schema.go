// ABOUTME: SQLite schema for wage snapshots
// ABOUTME: One wages table mirroring the dataset columns plus import metadata
package sqlite

// WagesTable is the table holding snapshot rows
const WagesTable = "wages"

// Schema contains all SQL statements for database initialization
const Schema = `
-- Snapshot rows, one per (occupation, geography) as published
CREATE TABLE IF NOT EXISTS wages (
    row_id INTEGER PRIMARY KEY,
    OCC_TITLE TEXT NOT NULL,
    PRIM_STATE TEXT,
    AREA_TITLE TEXT NOT NULL,
    H_PCT10 REAL,
    H_PCT25 REAL,
    H_MEDIAN REAL,
    H_PCT75 REAL,
    H_PCT90 REAL,
    A_PCT10 REAL,
    A_PCT25 REAL,
    A_MEDIAN REAL,
    A_PCT75 REAL,
    A_PCT90 REAL,
    TOT_EMP REAL,
    JOBS_1000 REAL,
    LOC_QUOTIENT REAL
);

-- Single-row import metadata
CREATE TABLE IF NOT EXISTS snapshot_meta (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    source TEXT NOT NULL,
    row_count INTEGER NOT NULL,
    imported_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_wages_occ_area ON wages(OCC_TITLE, AREA_TITLE);
CREATE INDEX IF NOT EXISTS idx_wages_occ_state ON wages(OCC_TITLE, PRIM_STATE);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
