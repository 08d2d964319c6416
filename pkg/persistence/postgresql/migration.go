package postgresql

// migrations returns the schema migrations, keyed by version. Section
// scalars, committed collections, attachment references, and deletion
// markers all travel as JSONB.
func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE IF NOT EXISTS courses (
				id TEXT PRIMARY KEY,
				status TEXT NOT NULL,
				code TEXT NOT NULL,
				title TEXT NOT NULL,
				sections JSONB NOT NULL DEFAULT '{}',
				collections JSONB NOT NULL DEFAULT '{}',
				attachments JSONB NOT NULL DEFAULT '{}',
				deletion_markers JSONB NOT NULL DEFAULT '[]',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX IF NOT EXISTS idx_courses_status ON courses(status) WHERE deleted_at IS NULL;
			CREATE UNIQUE INDEX IF NOT EXISTS idx_courses_code ON courses(code) WHERE deleted_at IS NULL;
		`,
		2: `
			CREATE TABLE IF NOT EXISTS course_templates (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				document JSONB NOT NULL,
				source_course_id TEXT,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
			);

			CREATE INDEX IF NOT EXISTS idx_course_templates_source ON course_templates(source_course_id);
		`,
	}
}
