package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_tracker (
    file_path            TEXT PRIMARY KEY,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    id                   TEXT NOT NULL,
    label                TEXT,
    sku                  TEXT,
    sku_id               TEXT,
    category             TEXT,
    category_id          TEXT,
    supplier_id          TEXT,
    customer_id          TEXT,
    status               TEXT,
    cash_in              REAL,
    cash_out             REAL,
    date_in              TEXT,
    date_out             TEXT,
    PRIMARY KEY (file_path, seq)
);

CREATE TABLE IF NOT EXISTS parties (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    role                 TEXT NOT NULL,
    id                   TEXT NOT NULL,
    name                 TEXT,
    payment_terms        INTEGER,
    days_outstanding     INTEGER,
    PRIMARY KEY (file_path, role, seq)
);

CREATE TABLE IF NOT EXISTS skus (
    file_path            TEXT NOT NULL REFERENCES file_tracker(file_path) ON DELETE CASCADE,
    seq                  INTEGER NOT NULL,
    id                   TEXT NOT NULL,
    code                 TEXT,
    name                 TEXT,
    PRIMARY KEY (file_path, seq)
);

CREATE INDEX IF NOT EXISTS idx_transactions_supplier ON transactions(supplier_id);
CREATE INDEX IF NOT EXISTS idx_transactions_customer ON transactions(customer_id);
`
