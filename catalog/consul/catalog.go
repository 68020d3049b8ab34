// Package consul provides a source catalog backed by the HashiCorp Consul
// KV store.
//
// Each class name maps to one KV entry under a configurable prefix.
// Consul KV limits values to 512KB, which comfortably fits the source
// definitions a runtime compilation pipeline deals with; larger sources
// belong in the s3 catalog instead.
package consul

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/consul/api"

	"github.com/mkessel/artifactfs/catalog"
)

// ConsulCatalog stores source text in Consul KV.
type ConsulCatalog struct {
	client *api.Client
	kv     *api.KV

	config *ConsulCatalogConfig
}

// ConsulCatalogConfig contains configuration options for the Consul catalog.
type ConsulCatalogConfig struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (default: "artifactfs/sources/")
	Prefix string
}

// NewConsulCatalog creates a new Consul-backed source catalog.
func NewConsulCatalog(config *ConsulCatalogConfig) (*ConsulCatalog, error) {
	if config == nil {
		config = &ConsulCatalogConfig{}
	}

	// Set defaults
	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "artifactfs/sources/"
	}
	if !strings.HasSuffix(config.Prefix, "/") {
		config.Prefix += "/"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &ConsulCatalog{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Resolve returns the source text registered under className.
func (cc *ConsulCatalog) Resolve(ctx context.Context, className string) (string, error) {
	pair, _, err := cc.kv.Get(cc.buildKey(className), (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", err
	}
	if pair == nil {
		return "", fmt.Errorf("%w: %s", catalog.ErrNotFound, className)
	}

	return string(pair.Value), nil
}

// Store registers source text under className, replacing any previous text.
func (cc *ConsulCatalog) Store(ctx context.Context, className, source string) error {
	pair := &api.KVPair{
		Key:   cc.buildKey(className),
		Value: []byte(source),
	}

	_, err := cc.kv.Put(pair, (&api.WriteOptions{}).WithContext(ctx))
	return err
}

// List returns the class names under the given dotted package prefix in
// lexical order. Consul lists by key prefix, so package filtering happens
// client-side.
func (cc *ConsulCatalog) List(ctx context.Context, pkg string) ([]string, error) {
	keys, _, err := cc.kv.Keys(cc.config.Prefix, "", (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var names []string
	for _, key := range keys {
		name := strings.TrimPrefix(key, cc.config.Prefix)
		if catalog.InPackage(name, pkg) {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

// Delete removes the source registered under className.
func (cc *ConsulCatalog) Delete(ctx context.Context, className string) (bool, error) {
	key := cc.buildKey(className)

	// Consul's Delete is idempotent and reports nothing about prior
	// existence, so check first.
	pair, _, err := cc.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return false, err
	}
	if pair == nil {
		return false, nil
	}

	if _, err := cc.kv.Delete(key, (&api.WriteOptions{}).WithContext(ctx)); err != nil {
		return false, err
	}

	return true, nil
}

// Close is a no-op; the Consul client holds no connections to release.
func (cc *ConsulCatalog) Close(ctx context.Context) error {
	return nil
}

// buildKey maps a class name to its Consul KV key.
func (cc *ConsulCatalog) buildKey(className string) string {
	return cc.config.Prefix + className
}
