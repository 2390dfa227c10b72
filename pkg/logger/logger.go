package logger

import (
	"context"
	"fmt"
	appConfig "goclan/pkg/config"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Logger writes to a temporary file that can be flushed to a S3 bucket.
type Logger struct {
	mu       sync.Mutex
	logFile  *os.File
	filePath string
}

// CreateLogger creates the log instance with a temporary file.
func CreateLogger() (*Logger, error) {
	f, err := os.CreateTemp("", "goclan-log-*.log")
	if err != nil {
		return nil, err
	}

	return &Logger{
		logFile:  f,
		filePath: f.Name(),
	}, nil
}

// Infof logs a simple info.
func (l *Logger) Infof(format string, args ...any) {
	l.write("[INFO]", format, args...)
}

// Errorf logs a error.
func (l *Logger) Errorf(format string, args ...any) {
	l.write("[ERROR]", format, args...)
}

// Write something to the logger.
func (l *Logger) write(infoType string, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	line := fmt.Sprintf("%-8s %s %s\n", infoType, timestamp, fmt.Sprintf(format, args...))

	l.logFile.WriteString(line)
}

// CleanFile truncates the file contents.
func (l *Logger) CleanFile() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logFile.Truncate(0)
	l.logFile.Seek(0, 0)
}

// UploadToS3Bucket sends the accumulated log to the configured bucket
// and truncates the local file. No-op when no bucket is configured.
func (l *Logger) UploadToS3Bucket(objectKey string) error {
	if appConfig.Logs.Bucket == "" {
		return nil
	}

	if _, err := l.logFile.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind file: %v", err)
	}

	cfg := aws.Config{
		Region: appConfig.Logs.Region,
		Credentials: aws.NewCredentialsCache(
			credentials.NewStaticCredentialsProvider(
				appConfig.Logs.AccessKey,
				appConfig.Logs.SecretKey,
				"",
			),
		),
	}

	s3Client := s3.NewFromConfig(cfg)

	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket: aws.String(appConfig.Logs.Bucket),
		Key:    aws.String(objectKey),
		Body:   l.logFile,
		ACL:    types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s to S3 bucket: %v", objectKey, err)
	}

	l.CleanFile()

	return nil
}
