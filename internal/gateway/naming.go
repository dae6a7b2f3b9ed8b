package gateway

import (
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

const DefinitionSuffix = ".bpmn"

// DeploymentName returns the name a definition is deployed under. An empty name falls back to the
// file's base name without extension. The result always ends in DefinitionSuffix.
// It never fails: on any internal error the given name is returned unchanged.
func DeploymentName(name, filePath string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("name", name).Errorf("compute deployment name: %v", r)
			out = name
		}
	}()
	n, err := deploymentName(name, filePath)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"name":     name,
			"filePath": filePath,
		}).Warn("compute deployment name")
		return name
	}
	return n
}

func deploymentName(name, filePath string) (string, error) {
	if name == "" {
		if strings.TrimSpace(filePath) == "" {
			return "", fmt.Errorf("no name and no file path")
		}
		base := filepath.Base(filePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
		if name == "" || name == "." || name == string(filepath.Separator) {
			return "", fmt.Errorf("no base name in %q", filePath)
		}
	}
	if strings.HasSuffix(name, DefinitionSuffix) {
		return name, nil
	}
	return name + DefinitionSuffix, nil
}
