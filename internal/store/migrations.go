package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	name        TEXT NOT NULL CHECK(length(trim(name)) > 0),
	description TEXT,
	time_spent  INTEGER NOT NULL DEFAULT 0 CHECK(time_spent >= 0),
	category    TEXT,
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_tasks_category ON tasks(lower(category));
CREATE INDEX IF NOT EXISTS idx_tasks_created_at ON tasks(created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
	{
		version: 2,
		sql: `
CREATE TABLE IF NOT EXISTS tracking_sessions (
	id         TEXT PRIMARY KEY,
	task_id    INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	start_time DATETIME NOT NULL,
	end_time   DATETIME,
	duration   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_sessions_task_id ON tracking_sessions(task_id);
CREATE INDEX IF NOT EXISTS idx_sessions_open ON tracking_sessions(end_time) WHERE end_time IS NULL;

CREATE TABLE IF NOT EXISTS days (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	date           TEXT NOT NULL UNIQUE,
	total_duration INTEGER NOT NULL DEFAULT 0
);

INSERT INTO schema_version (version) VALUES (2);
`,
	},
	{
		version: 3,
		sql: `
DROP INDEX IF EXISTS idx_tasks_category;
CREATE INDEX idx_tasks_category ON tasks(fold_category(category));

INSERT INTO schema_version (version) VALUES (3);
`,
	},
}
