package sqlite

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chats (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	unread     INTEGER NOT NULL DEFAULT 0,
	archived   INTEGER NOT NULL DEFAULT 0,
	updated_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_chats_session ON chats(session_id, archived);

CREATE TABLE IF NOT EXISTS folders (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
	title      TEXT NOT NULL,
	position   INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS folder_chats (
	folder_id INTEGER NOT NULL REFERENCES folders(id) ON DELETE CASCADE,
	chat_id   INTEGER NOT NULL REFERENCES chats(id) ON DELETE CASCADE,
	PRIMARY KEY (folder_id, chat_id)
);
`
