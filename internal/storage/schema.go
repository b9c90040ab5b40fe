package storage

const schema = `
-- The 'kv' table is the key-value persistence surface. It holds one row
-- per difficulty with the best known move count as a decimal string.
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at DATETIME NOT NULL
);
`
