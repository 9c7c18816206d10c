package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SaveExtendedSections sets sections.extended in the config file. A nil ids
// removes the key so every extended section is enabled again.
// Comments and formatting elsewhere in the file are preserved.
func SaveExtendedSections(configPath string, ids []string) error {
	if ids == nil {
		return updateConfig(configPath, []string{"sections", "extended"}, nil)
	}
	var node yaml.Node
	if err := node.Encode(ids); err != nil {
		return fmt.Errorf("building sections node: %w", err)
	}
	node.Style = yaml.FlowStyle
	return updateConfig(configPath, []string{"sections", "extended"}, &node)
}

// SaveLocale sets the display locale in the config file.
func SaveLocale(configPath, locale string) error {
	if err := ValidateLocale(locale); err != nil {
		return err
	}
	node := &yaml.Node{Kind: yaml.ScalarNode, Value: locale}
	return updateConfig(configPath, []string{"locale"}, node)
}

// updateConfig replaces the value at keys with value, creating intermediate
// mappings as needed. A nil value deletes the key.
func updateConfig(configPath string, keys []string, value *yaml.Node) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}
	if doc.Kind == 0 {
		doc = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return fmt.Errorf("parsing config: top level is not a mapping")
	}

	if value == nil {
		deleteKey(doc.Content[0], keys)
	} else if err := setKey(doc.Content[0], keys, value); err != nil {
		return err
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	return writeAtomic(configPath, buf.Bytes())
}

func setKey(m *yaml.Node, keys []string, value *yaml.Node) error {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value != keys[0] {
			continue
		}
		if len(keys) == 1 {
			m.Content[i+1] = value
			return nil
		}
		child := m.Content[i+1]
		if child.Kind != yaml.MappingNode {
			if child.Tag != "!!null" {
				return fmt.Errorf("config key %q is not a mapping", keys[0])
			}
			child = &yaml.Node{Kind: yaml.MappingNode}
			m.Content[i+1] = child
		}
		return setKey(child, keys[1:], value)
	}

	if len(keys) == 1 {
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: keys[0]}, value)
		return nil
	}
	child := &yaml.Node{Kind: yaml.MappingNode}
	m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: keys[0]}, child)
	return setKey(child, keys[1:], value)
}

func deleteKey(m *yaml.Node, keys []string) {
	for i := 0; i < len(m.Content)-1; i += 2 {
		if m.Content[i].Value != keys[0] {
			continue
		}
		if len(keys) == 1 {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return
		}
		if m.Content[i+1].Kind == yaml.MappingNode {
			deleteKey(m.Content[i+1], keys[1:])
		}
		return
	}
}

// writeAtomic writes to a temp file in the same directory, then renames it.
func writeAtomic(configPath string, data []byte) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, ".spherenav.yaml.tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tempPath := temp.Name()

	if _, err := temp.Write(data); err != nil {
		_ = temp.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := temp.Close(); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, configPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
