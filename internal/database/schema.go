package database

// schema only covers what the hub touches; the REST service owns the rest
// of these tables and may carry more columns.
const schema = `
CREATE TABLE IF NOT EXISTS conversation_participants (
	conversation_id TEXT NOT NULL,
	user_id         TEXT NOT NULL,
	PRIMARY KEY (conversation_id, user_id)
);

CREATE TABLE IF NOT EXISTS messages (
	id              TEXT PRIMARY KEY,
	conversation_id TEXT NOT NULL,
	sender_id       TEXT NOT NULL DEFAULT '',
	content         TEXT NOT NULL DEFAULT '',
	type            TEXT NOT NULL DEFAULT 'text',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS message_reactions (
	message_id TEXT NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
	user_id    TEXT NOT NULL,
	emoji      TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (message_id, user_id, emoji)
);

CREATE TABLE IF NOT EXISTS user_presence (
	user_id   TEXT PRIMARY KEY,
	is_online BOOLEAN NOT NULL,
	last_seen TIMESTAMPTZ NOT NULL
);
`
