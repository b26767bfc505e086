package bootstrap

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kbukum/serialization/logger"
	"github.com/kbukum/serialization/provider"
	"github.com/kbukum/serialization/version"
)

// Summary records what the bootstrap composed and prints it at startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	providerName    string
	contentType     string
	middleware      []string
	registrations   []provider.RegistrationInfo
	telemetry       string

	out io.Writer
}

// NewSummary creates a new bootstrap summary tracker.
func NewSummary(serviceName, serviceVersion string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     serviceVersion,
		out:         os.Stdout,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// TrackProvider records the active provider.
func (s *Summary) TrackProvider(p provider.Provider) {
	s.providerName = p.Name()
	s.contentType = p.ContentType()
}

// TrackMiddleware records the middleware wrapped around the configured backend.
func (s *Summary) TrackMiddleware(names []string) {
	s.middleware = append([]string(nil), names...)
}

// TrackRegistrations records the registry contents.
func (s *Summary) TrackRegistrations(infos []provider.RegistrationInfo) {
	s.registrations = infos
}

// TrackTelemetry records the OTLP endpoint telemetry is exported to.
func (s *Summary) TrackTelemetry(endpoint string) {
	s.telemetry = endpoint
}

// Write prints the summary to w.
func (s *Summary) Write(w io.Writer) {
	fmt.Fprintf(w, "\n🚀 %s %s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	fmt.Fprintf(w, "📦 Serialization %s\n", version.Get())
	fmt.Fprintf(w, "   ├── provider: %s (%s)\n", s.providerName, s.contentType)
	middleware := "none"
	if len(s.middleware) > 0 {
		middleware = strings.Join(s.middleware, ", ")
	}
	fmt.Fprintf(w, "   └── middleware: %s\n", middleware)

	if len(s.registrations) > 0 {
		fmt.Fprintf(w, "\n🗂  Registrations (%d)\n", len(s.registrations))
		for i, r := range s.registrations {
			prefix := "├──"
			if i == len(s.registrations)-1 {
				prefix = "└──"
			}
			marker := " "
			if r.Active {
				marker = "*"
			}
			fmt.Fprintf(w, "   %s %s %s [%s]\n", prefix, marker, r.Name, r.Kind)
		}
	}

	if s.telemetry != "" {
		fmt.Fprintf(w, "\n📡 Telemetry → %s\n", s.telemetry)
	}
	fmt.Fprintf(w, "\n")
}

// DisplaySummary prints the summary and logs the active provider.
func (s *Summary) DisplaySummary(log *logger.Logger) {
	s.Write(s.out)
	log.Info("serialization provider ready", logger.Fields(
		logger.FieldProvider, s.providerName,
		logger.FieldContentType, s.contentType,
		"registrations", len(s.registrations),
	))
}
