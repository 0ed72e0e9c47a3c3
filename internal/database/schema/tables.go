package schema

// TableDefinitions contains all the SQL statements to create the database tables
// Don't put REFERENCES and don't put CHECK constraints in the CREATE TABLE statements
var TableDefinitions = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id SERIAL PRIMARY KEY,
		username VARCHAR(50) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role VARCHAR(30) NOT NULL,
		email VARCHAR(100) UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		last_login TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS crews (
		crew_id SERIAL PRIMARY KEY,
		crew_name VARCHAR(10) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (crew_name)
	)`,
	`CREATE TABLE IF NOT EXISTS shift_definitions (
		shift_id SERIAL PRIMARY KEY,
		shift_name VARCHAR(20),
		start_time TIME,
		end_time TIME,
		duration_hours INTEGER,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS operators (
		operator_id VARCHAR(10) PRIMARY KEY,
		crew_id INTEGER,
		default_shift_id INTEGER,
		operator_rank BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS crew_rotations (
		rotation_id SERIAL PRIMARY KEY,
		crew_id INTEGER NOT NULL,
		anchor_date DATE NOT NULL,
		on_days INTEGER NOT NULL,
		off_days INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS shift_instances (
		shift_instance_id SERIAL PRIMARY KEY,
		crew_id INTEGER NOT NULL,
		shift_id INTEGER NOT NULL,
		shift_start TIMESTAMP,
		shift_end TIMESTAMP,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		session_id BIGINT PRIMARY KEY,
		shift_instance_id INTEGER,
		operator_id VARCHAR(10) NOT NULL,
		shift_id INTEGER NOT NULL,
		session_start TIMESTAMP NOT NULL,
		session_end TIMESTAMP,
		inactivity_threshold_min INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS events (
		event_id BIGSERIAL PRIMARY KEY,
		session_id BIGINT NOT NULL,
		operator_id VARCHAR(10) NOT NULL,
		timestamp TIMESTAMP NOT NULL,
		time_interval DOUBLE PRECISION NOT NULL,
		address VARCHAR(50) NOT NULL,
		function_code VARCHAR(10) NOT NULL,
		command_response VARCHAR(50) NOT NULL,
		control_mode VARCHAR(50) NOT NULL,
		control_scheme VARCHAR(100) NOT NULL,
		crc INTEGER NOT NULL,
		data_length INTEGER NOT NULL,
		invalid_function_code VARCHAR(5) NOT NULL,
		invalid_data_length VARCHAR(5) NOT NULL,
		pump_state VARCHAR(50) NOT NULL,
		solenoid_state VARCHAR(50) NOT NULL,
		set_point DOUBLE PRECISION NOT NULL,
		pipeline_psi DOUBLE PRECISION NOT NULL,
		pid_cycle_time DOUBLE PRECISION NOT NULL,
		pid_deadband DOUBLE PRECISION NOT NULL,
		pid_gain DOUBLE PRECISION NOT NULL,
		pid_rate DOUBLE PRECISION NOT NULL,
		pid_reset DOUBLE PRECISION NOT NULL,
		delta_set_point DOUBLE PRECISION NOT NULL,
		delta_pipeline_psi DOUBLE PRECISION NOT NULL,
		delta_pid_cycle_time DOUBLE PRECISION NOT NULL,
		delta_pid_deadband DOUBLE PRECISION NOT NULL,
		delta_pid_gain DOUBLE PRECISION NOT NULL,
		delta_pid_rate DOUBLE PRECISION NOT NULL,
		delta_pid_reset DOUBLE PRECISION NOT NULL,
		label VARCHAR(50) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS session_features (
		session_features_id SERIAL PRIMARY KEY,
		session_id BIGINT UNIQUE NOT NULL,
		command_frequency DOUBLE PRECISION NOT NULL,
		inter_command_mean DOUBLE PRECISION NOT NULL,
		inter_command_std DOUBLE PRECISION NOT NULL,
		command_burst_rate DOUBLE PRECISION NOT NULL,
		control_mode_change_rate DOUBLE PRECISION NOT NULL,
		high_risk_command_ratio DOUBLE PRECISION NOT NULL,
		invalid_command_rate DOUBLE PRECISION NOT NULL,
		pump_state_change_rate DOUBLE PRECISION NOT NULL,
		setpoint_shock_event_rate DOUBLE PRECISION NOT NULL,
		pid_modification_rate DOUBLE PRECISION NOT NULL,
		command_entropy DOUBLE PRECISION NOT NULL,
		process_command_correlation DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS baseline_profiles (
		baseline_id SERIAL PRIMARY KEY,
		operator_id VARCHAR(10) NOT NULL,
		shift_id INTEGER,
		baseline_version VARCHAR(20) NOT NULL,
		trained_from TIMESTAMP NOT NULL,
		trained_to TIMESTAMP NOT NULL,
		profile_json TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uq_baseline_operator_shift_version UNIQUE (operator_id, shift_id, baseline_version)
	)`,
	`CREATE TABLE IF NOT EXISTS detections (
		detection_id SERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL,
		baseline_id INTEGER NOT NULL,
		model_type VARCHAR(30) NOT NULL,
		anomaly_score DOUBLE PRECISION NOT NULL,
		threshold DOUBLE PRECISION NOT NULL,
		evidence_json TEXT NOT NULL,
		predicted_label VARCHAR(15) NOT NULL,
		detection_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		CONSTRAINT uq_detection_event_baseline_model UNIQUE (event_id, baseline_id, model_type)
	)`,
	`CREATE TABLE IF NOT EXISTS alerts (
		alert_id SERIAL PRIMARY KEY,
		event_id BIGINT NOT NULL,
		session_id BIGINT NOT NULL,
		detection_id INTEGER NOT NULL,
		alert_time TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		severity INTEGER NOT NULL,
		alert_category VARCHAR(30) NOT NULL,
		alert_description VARCHAR(500) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS cti_objects (
		cti_id SERIAL PRIMARY KEY,
		cti_type VARCHAR(30) NOT NULL,
		cti_name VARCHAR(150) NOT NULL,
		external_id VARCHAR(50),
		rule VARCHAR(500),
		confidence INTEGER,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS alert_cti_links (
		alert_id INTEGER NOT NULL,
		cti_id INTEGER NOT NULL,
		match_reason VARCHAR(250),
		link_created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (alert_id, cti_id)
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		key VARCHAR(255) PRIMARY KEY,
		value TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (key)
	)`,
	`CREATE TABLE IF NOT EXISTS import_jobs (
		id UUID PRIMARY KEY,
		source_file VARCHAR(500) NOT NULL,
		status VARCHAR(20) NOT NULL,
		rows_read BIGINT NOT NULL DEFAULT 0,
		operators_created INTEGER NOT NULL DEFAULT 0,
		sessions_created INTEGER NOT NULL DEFAULT 0,
		events_inserted BIGINT NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at TIMESTAMP NOT NULL,
		started_at TIMESTAMP,
		completed_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS ix_sessions_operator_start ON sessions (operator_id, session_start)`,
	`CREATE INDEX IF NOT EXISTS ix_sessions_shift_start ON sessions (shift_id, session_start)`,
	`CREATE INDEX IF NOT EXISTS ix_events_session_time ON events (session_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS ix_events_operator_time ON events (operator_id, timestamp)`,
	`CREATE INDEX IF NOT EXISTS ix_events_address_fc ON events (address, function_code)`,
	`CREATE INDEX IF NOT EXISTS ix_baseline_operator_shift ON baseline_profiles (operator_id, shift_id)`,
	`CREATE INDEX IF NOT EXISTS ix_detections_event_id ON detections (event_id)`,
	`CREATE INDEX IF NOT EXISTS ix_detections_baseline_time ON detections (baseline_id, detection_time)`,
	`CREATE INDEX IF NOT EXISTS ix_alerts_time_severity ON alerts (alert_time, severity)`,
	`CREATE INDEX IF NOT EXISTS ix_alerts_detection_id ON alerts (detection_id)`,
	`CREATE INDEX IF NOT EXISTS ix_import_jobs_status ON import_jobs (status)`,
	`CREATE INDEX IF NOT EXISTS ix_import_jobs_created_at ON import_jobs (created_at)`,
}

// TableNames returns a list of all table names in creation order
var TableNames = []string{
	"users",
	"crews",
	"shift_definitions",
	"operators",
	"crew_rotations",
	"shift_instances",
	"sessions",
	"events",
	"session_features",
	"baseline_profiles",
	"detections",
	"alerts",
	"cti_objects",
	"alert_cti_links",
	"settings",
	"import_jobs",
}
