package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	apperrors "bookshop/pkg/errors"

	"go.uber.org/zap"
)

// LogDateLayout is the date format log lines begin with and the format the
// log endpoints accept (dd-MM-yyyy).
const LogDateLayout = "02-01-2006"

// LogService slices the application log file into per-date excerpts.
type LogService struct {
	logPath string
	logger  *zap.Logger
}

// NewLogService creates a log service reading from logPath
func NewLogService(logPath string, logger *zap.Logger) *LogService {
	return &LogService{
		logPath: logPath,
		logger:  logger,
	}
}

// ParseDate validates a dd-MM-yyyy date string.
func (s *LogService) ParseDate(date string) (time.Time, error) {
	parsed, err := time.Parse(LogDateLayout, date)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("Invalid date format. Required dd-mm-yyyy")
	}
	return parsed, nil
}

// Slice extracts the log lines for the given date into a private temp file
// and returns its path. The caller owns the file.
func (s *LogService) Slice(date string) (string, error) {
	parsed, err := s.ParseDate(date)
	if err != nil {
		return "", err
	}
	formatted := parsed.Format(LogDateLayout)

	data, err := os.ReadFile(s.logPath)
	if err != nil {
		return "", apperrors.NewFileError(fmt.Sprintf("log file is not readable: %s", s.logPath), err)
	}

	var matched []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, formatted) {
			matched = append(matched, line)
		}
	}
	if len(matched) == 0 {
		return "", apperrors.NewNotFoundError(fmt.Sprintf("logs for date %s", date))
	}

	excerpt, err := os.CreateTemp("", "logs-"+formatted+"-*.log")
	if err != nil {
		return "", apperrors.NewFileError("failed to create temp file", err)
	}
	defer excerpt.Close()

	if err := excerpt.Chmod(0o600); err != nil {
		return "", apperrors.NewFileError("failed to restrict temp file permissions", err)
	}
	if _, err := excerpt.WriteString(strings.Join(matched, "\n") + "\n"); err != nil {
		return "", apperrors.NewFileError("failed to write log excerpt", err)
	}

	s.logger.Debug("Log excerpt created",
		zap.String("date", date),
		zap.Int("lines", len(matched)),
		zap.String("file", excerpt.Name()),
	)
	return excerpt.Name(), nil
}
