package errors

import (
	"bytes"
	"reflect"
	"strings"
)

// ErrorCode represents a specific error code in the system.
type ErrorCode string

const (
	// GeneralInternalServerError represents a generic internal server error.
	GeneralInternalServerError ErrorCode = "general_internal_server_error"
	// GeneralBadRequestError represents a generic bad request error.
	GeneralBadRequestError ErrorCode = "general_bad_request_error"
	// GeneralRepositoryError represents a generic repository error.
	GeneralRepositoryError ErrorCode = "general_repository_error"

	// InvalidSymbolError represents a symbol that cannot be parsed or is empty.
	InvalidSymbolError ErrorCode = "invalid_symbol"
	// InvalidBarSpecificationError represents a bar specification with a non-positive period or
	// an unrecognised resolution or quote type.
	InvalidBarSpecificationError ErrorCode = "invalid_bar_specification"
	// InvalidBarTypeError represents a bar type string that cannot be parsed.
	InvalidBarTypeError ErrorCode = "invalid_bar_type"
	// InvalidTickError represents a tick payload that cannot be decoded.
	InvalidTickError ErrorCode = "invalid_tick"
	// InvalidCronExpressionError represents a market session cron expression that cannot be parsed.
	InvalidCronExpressionError ErrorCode = "invalid_cron_expression"
	// InvalidConfigurationError represents an environment setting that cannot be used at startup.
	InvalidConfigurationError ErrorCode = "invalid_configuration"

	// SchedulerJobNotFoundError represents a pause, resume or remove request for an unknown job.
	SchedulerJobNotFoundError ErrorCode = "scheduler_job_not_found"
	// SchedulerJobExistsError represents a create request for a job key that is already scheduled.
	SchedulerJobExistsError ErrorCode = "scheduler_job_exists"
	// SchedulerStoppedError represents a request sent to a scheduler that has been shut down.
	SchedulerStoppedError ErrorCode = "scheduler_stopped"

	// KafkaPublishError represents an error when writing messages to a Kafka topic.
	KafkaPublishError ErrorCode = "kafka_publish_error"
	// QuestDBStoreError represents an error when inserting rows into QuestDB.
	QuestDBStoreError ErrorCode = "questdb_store_error"

	// RedisConfigError represents an error when the Redis configuration is invalid or nil.
	RedisConfigError ErrorCode = "redis_config_error"
	// RedisConnectionError represents an error when connecting to Redis.
	RedisConnectionError ErrorCode = "redis_connection_error"
	// RedisDisconnectionError represents an error when disconnecting from Redis.
	RedisDisconnectionError ErrorCode = "redis_disconnection_error"
	// RedisPingError represents an error when pinging Redis.
	RedisPingError ErrorCode = "redis_pinging_error"
	// RedisGetError represents an error when getting a value from Redis.
	RedisGetError ErrorCode = "redis_get_error"
	// RedisSetError represents an error when setting a value in Redis.
	RedisSetError ErrorCode = "redis_set_error"
	// RedisPublishError represents an error when publishing messages to channels in Redis.
	RedisPublishError ErrorCode = "redis_publish_error"
)

// Severity represents the severity level of an error.
type Severity string

const (
	// SeverityCritical indicates a critical error that requires immediate attention.
	SeverityCritical Severity = "critical"
	// SeverityHigh indicates a high severity error that should be addressed promptly.
	SeverityHigh Severity = "high"
	// SeverityMedium indicates a medium severity error that should be addressed in due course.
	SeverityMedium Severity = "medium"
	// SeverityLow indicates a low severity error that can be addressed at a later time.
	SeverityLow Severity = "low"
)

// BaseError is an `error` type containing an array of ErrorDetails.
// It is used where several independent inputs are validated at once, e.g. the
// configured subscription list.
type BaseError struct {
	details []*ErrorDetails
}

// NewBaseError create BaseError with ErrorDetails
func NewBaseError(details ...*ErrorDetails) *BaseError {
	return &BaseError{details: details}
}

// AddErrorDetails add more ErrorDetails to BaseError
func (b *BaseError) AddErrorDetails(errors ...*ErrorDetails) {
	b.details = append(b.details, errors...)
}

// GetDetails get array ErrorDetails on BaseError
func (b *BaseError) GetDetails() []*ErrorDetails {
	return b.details
}

// HasDetails reports whether any ErrorDetails were collected.
func (b *BaseError) HasDetails() bool {
	return len(b.details) > 0
}

// Error implement error interface
func (b *BaseError) Error() string {
	buff := bytes.NewBufferString("")

	buff.WriteString("Error on\n")
	for _, err := range b.details {
		buff.WriteString("code: ")
		buff.WriteString(err.Code)
		buff.WriteString("; error: ")
		buff.WriteString(err.Error())
		buff.WriteString("; field: ")
		buff.WriteString(err.Field)
		buff.WriteString("; object: ")
		if err.Object != nil {
			buff.WriteString(reflect.TypeOf(err.Object).String())
		}
		buff.WriteString("\n")
	}

	return strings.TrimSpace(buff.String())
}

// Unwrap exposes every ErrorDetails to errors.Is and errors.As.
func (b *BaseError) Unwrap() []error {
	errs := make([]error, len(b.details))
	for i, d := range b.details {
		errs[i] = d
	}
	return errs
}

// IsAnyCodeEqual check if any ErrorDetails code is equal with given code
func (b *BaseError) IsAnyCodeEqual(code string) bool {
	for _, d := range b.GetDetails() {
		if d.Code == code {
			return true
		}
	}
	return false
}

// IsAllCodeEqual check if all ErrorDetails code is equal with given code
func (b *BaseError) IsAllCodeEqual(code string) bool {
	if len(b.details) == 0 {
		return false
	}

	for _, d := range b.GetDetails() {
		if d.Code != code {
			return false
		}
	}
	return true
}
