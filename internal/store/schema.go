package store

// Timestamps are stored as unix nanoseconds, calendar dates as YYYY-MM-DD
// text, so both sort correctly in SQL.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS users (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    external_id          TEXT NOT NULL UNIQUE,
    email                TEXT NOT NULL DEFAULT '',
    first_name           TEXT NOT NULL DEFAULT '',
    last_name            TEXT NOT NULL DEFAULT '',
    created_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
    user_id              INTEGER PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    monthly_income       REAL NOT NULL DEFAULT 0,
    monthly_expenses     REAL NOT NULL DEFAULT 0,
    savings_goal         REAL NOT NULL DEFAULT 0,
    current_savings      REAL NOT NULL DEFAULT 0,
    debt_amount          REAL NOT NULL DEFAULT 0,
    investment_amount    REAL NOT NULL DEFAULT 0,
    emergency_fund       REAL NOT NULL DEFAULT 0,
    updated_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id              INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    type                 TEXT NOT NULL CHECK (type IN ('income', 'expense')),
    category             TEXT NOT NULL,
    amount               REAL NOT NULL,
    description          TEXT NOT NULL DEFAULT '',
    date                 TEXT NOT NULL,
    created_at           INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS goals (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id              INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    goal_type            TEXT NOT NULL,
    target_amount        REAL NOT NULL,
    current_amount       REAL NOT NULL DEFAULT 0,
    target_date          TEXT,
    description          TEXT NOT NULL DEFAULT '',
    status               TEXT NOT NULL DEFAULT 'active',
    created_at           INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions(user_id, date DESC, created_at DESC);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals(user_id);
`
