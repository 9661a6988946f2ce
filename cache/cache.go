// Package cache 提供Redis连接池及访问
package cache

// ParamConf is the cache param conf with key prefix
type ParamConf struct {
	keyPrefix string
}

// NewParamConf create ParamConf
func NewParamConf(keyPrefix string) *ParamConf {
	return &ParamConf{keyPrefix: keyPrefix}
}

// KeyPrefix return key prefix
func (p *ParamConf) KeyPrefix() string {
	return p.keyPrefix
}

// NewWithKeyPrefix append keyPrefix to exist ParamConf,return new ParamConf
func (p *ParamConf) NewWithKeyPrefix(keyPrefix string) *ParamConf {
	var param = *p
	param.keyPrefix = p.keyPrefix + keyPrefix
	return &param
}

// NewParamKey create new ParamKey with key
func (p *ParamConf) NewParamKey(key string) *ParamKey {
	return &ParamKey{
		ParamConf: p,
		key:       p.keyPrefix + key,
	}
}

// ParamKey is the cache param with key
type ParamKey struct {
	*ParamConf
	key string
}

// Key return the full key
func (p *ParamKey) Key() string {
	return p.key
}
