package config

import (
	"github.com/gotify/configor"

	"finance-flow-backend/models"
)

var Conf *Configuration

type Configuration struct {
	App struct {
		ListenAddr string `default:"" env:"APP_HOST"`
		Port       int    `default:"8080"  env:"APP_PORT"`
	}
	Database struct {
		Host           string `default:"127.0.0.1" env:"DB_HOST"`
		Port           string `default:"5432" env:"DB_PORT"`
		Name           string `default:"finance-flow" env:"DB_NAME"`
		User           string `default:"postgres" env:"DB_USER"`
		Password       string `default:"postgres" env:"DB_PASSWORD"`
		MigrateOnStart *bool  `default:"true" env:"DB_MIGRATE_ON_START"`
		DebugMode      *bool  `default:"false" env:"DB_DEBUG_MODE"`
	}
	Auth struct {
		JWTSecret             string `default:"change-me" env:"AUTH_JWT_SECRET"`
		JWTExpireInSec        int    `default:"3600" env:"AUTH_JWT_EXPIRE_SEC"`
		JWTRefreshExpireInSec int    `default:"86400" env:"AUTH_JWT_REFRESH_EXPIRE_SEC"`
	}
	Smtp struct {
		User       string `default:"" env:"SMTP_USER"`
		Password   string `default:"" env:"SMTP_PASSWORD"`
		Host       string `default:"" env:"SMTP_HOST"`
		Port       string `default:"" env:"SMTP_PORT"`
		TLSEnabled *bool  `default:"true" env:"SMTP_TLS_ENABLED"`
	}
	S3 struct {
		Endpoint        string `default:"127.0.0.1:9000" env:"S3_ENDPOINT"`
		AccessKeyID     string `default:"" env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `default:"" env:"S3_SECRET_ACCESS_KEY"`
		UseSSL          *bool  `default:"false" env:"S3_USE_SSL"`
		BucketName      string `default:"finance-flow" env:"S3_BUCKET_NAME"`
	}
	Sla struct {
		SweepIntervalMin   int `default:"60" env:"SLA_SWEEP_INTERVAL_MIN"`
		AtRiskWindowHours  int `default:"4" env:"SLA_AT_RISK_WINDOW_HOURS"`
		WarnElapsedPercent int `default:"80" env:"SLA_WARN_ELAPSED_PERCENT"`
		WarnSuppressHours  int `default:"24" env:"SLA_WARN_SUPPRESS_HOURS"`
	}
	Workflow WorkflowConfig
}

// WorkflowLevel is one stage of the approval chain. CriticalSlaHours, when
// non-zero, replaces SlaHours for CRITICAL payment requests.
type WorkflowLevel struct {
	Level            string `yaml:"level"`
	Role             string `yaml:"role"`
	SlaHours         int    `yaml:"sla_hours"`
	CriticalSlaHours int    `yaml:"critical_sla_hours"`
}

type WorkflowConfig struct {
	MaxResubmissions int `default:"3" env:"WORKFLOW_MAX_RESUBMISSIONS"`
	// Levels is the ordered approval chain. Overridable via config.yml so the
	// same engine serves different chains without a code change.
	Levels []WorkflowLevel
}

// Chain returns the configured level sequence.
func (c WorkflowConfig) Chain() []WorkflowLevel {
	return c.Levels
}

func (c WorkflowConfig) LevelIndex(level models.ApprovalLevel) int {
	for i, l := range c.Levels {
		if models.ApprovalLevel(l.Level) == level {
			return i
		}
	}
	return -1
}

func defaultLevels() []WorkflowLevel {
	return []WorkflowLevel{
		{Level: string(models.LevelFinanceVetting), Role: string(models.RoleFinanceTeam), SlaHours: 72, CriticalSlaHours: 24},
		{Level: string(models.LevelFinancePlanner), Role: string(models.RoleFinanceController), SlaHours: 24},
		{Level: string(models.LevelFinanceController), Role: string(models.RoleFinanceController), SlaHours: 24},
		{Level: string(models.LevelDirector), Role: string(models.RoleDirector), SlaHours: 24},
		{Level: string(models.LevelMD), Role: string(models.RoleMD), SlaHours: 24},
		{Level: string(models.LevelDisbursement), Role: string(models.RoleFinanceTeam), SlaHours: 24},
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

func InitConfig() {
	if Conf != nil {
		return
	}
	conf := new(Configuration)
	err := configor.New(&configor.Config{}).Load(conf, configFiles()...)
	if err != nil {
		panic(err)
	}
	if len(conf.Workflow.Levels) == 0 {
		conf.Workflow.Levels = defaultLevels()
	}
	Conf = conf
}
