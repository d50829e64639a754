package postgresql

func migrations() map[int]string {
	return map[int]string{
		1: `
			CREATE TABLE leads (
				id UUID PRIMARY KEY,
				first_name VARCHAR(255) NOT NULL,
				last_name VARCHAR(255) NOT NULL DEFAULT '',
				email VARCHAR(255) NOT NULL DEFAULT '',
				phone VARCHAR(50) NOT NULL DEFAULT '',
				company VARCHAR(255) NOT NULL DEFAULT '',
				status VARCHAR(50) NOT NULL DEFAULT 'new',
				score INT NOT NULL DEFAULT 0,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_leads_status ON leads(status);
			CREATE INDEX idx_leads_score ON leads(score);

			CREATE TABLE tags (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL UNIQUE,
				color VARCHAR(50) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE TABLE lead_tags (
				lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
				tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
				PRIMARY KEY (lead_id, tag_id)
			);

			CREATE TABLE tasks (
				id UUID PRIMARY KEY,
				title VARCHAR(255) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				lead_id UUID REFERENCES leads(id) ON DELETE SET NULL,
				due_date TIMESTAMP WITH TIME ZONE,
				priority VARCHAR(50) NOT NULL DEFAULT 'medium',
				status VARCHAR(50) NOT NULL DEFAULT 'pending',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_tasks_lead_id ON tasks(lead_id);

			CREATE TABLE activities (
				id UUID PRIMARY KEY,
				lead_id UUID NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
				type VARCHAR(50) NOT NULL,
				description TEXT NOT NULL DEFAULT '',
				metadata JSONB,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_activities_lead_id ON activities(lead_id);
		`,
		2: `
			CREATE TABLE workflows (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				trigger_type VARCHAR(50) NOT NULL,
				trigger_data JSONB,
				actions JSONB NOT NULL DEFAULT '[]',
				is_active BOOLEAN NOT NULL DEFAULT true,
				executions BIGINT NOT NULL DEFAULT 0,
				last_run_at TIMESTAMP WITH TIME ZONE,
				next_run_at TIMESTAMP WITH TIME ZONE,
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL,
				deleted_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_workflows_trigger_type ON workflows(trigger_type) WHERE deleted_at IS NULL;
			CREATE INDEX idx_workflows_next_run_at ON workflows(next_run_at) WHERE deleted_at IS NULL;

			CREATE TABLE workflow_executions (
				id UUID PRIMARY KEY,
				workflow_id UUID NOT NULL REFERENCES workflows(id) ON DELETE CASCADE,
				status VARCHAR(50) NOT NULL CHECK (status IN ('running', 'success', 'failed')),
				lead_id UUID,
				metadata JSONB,
				error TEXT,
				started_at TIMESTAMP WITH TIME ZONE NOT NULL,
				completed_at TIMESTAMP WITH TIME ZONE
			);

			CREATE INDEX idx_workflow_executions_workflow_id ON workflow_executions(workflow_id);
			CREATE INDEX idx_workflow_executions_status ON workflow_executions(status);
		`,
		3: `
			CREATE TABLE campaigns (
				id UUID PRIMARY KEY,
				name VARCHAR(255) NOT NULL,
				type VARCHAR(50) NOT NULL CHECK (type IN ('email', 'sms')),
				status VARCHAR(50) NOT NULL DEFAULT 'draft',
				subject VARCHAR(255) NOT NULL DEFAULT '',
				body TEXT NOT NULL DEFAULT '',
				is_recurring BOOLEAN NOT NULL DEFAULT false,
				frequency VARCHAR(50),
				recurring_pattern JSONB,
				occurrence_count INT NOT NULL DEFAULT 0,
				max_occurrences INT,
				next_send_at TIMESTAMP WITH TIME ZONE,
				last_sent_at TIMESTAMP WITH TIME ZONE,
				start_date TIMESTAMP WITH TIME ZONE,
				end_date TIMESTAMP WITH TIME ZONE,
				sent INT NOT NULL DEFAULT 0,
				min_score INT NOT NULL DEFAULT 0,
				lead_status VARCHAR(50) NOT NULL DEFAULT '',
				created_at TIMESTAMP WITH TIME ZONE NOT NULL,
				updated_at TIMESTAMP WITH TIME ZONE NOT NULL
			);

			CREATE INDEX idx_campaigns_status ON campaigns(status);
			CREATE INDEX idx_campaigns_next_send_at ON campaigns(next_send_at);
			CREATE INDEX idx_campaigns_start_date ON campaigns(start_date);

			CREATE TABLE campaign_tags (
				campaign_id UUID NOT NULL REFERENCES campaigns(id) ON DELETE CASCADE,
				tag_id UUID NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
				PRIMARY KEY (campaign_id, tag_id)
			);
		`,
	}
}
