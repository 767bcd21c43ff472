package mesh

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger sets the logger used by the mesh packages. Nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}

// Logger returns the logger used by the mesh packages.
func Logger() *zap.Logger {
	return log
}
