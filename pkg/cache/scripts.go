package cache

import (
	"github.com/go-redis/redis/v8"
)

// Lua scripts for Redis operations
var (
	setSessionEntryScript     *redis.Script
	clearSessionEntriesScript *redis.Script
)

func init() {
	// store one entry and record its key in the session index.
	// KEYS[1] entry key, KEYS[2] index key; ARGV[1] payload, ARGV[2] ttl in ms (0 = none).
	setSessionEntryScript = redis.NewScript(`
		local ttl = tonumber(ARGV[2])
		if ttl > 0 then
			redis.call('SET', KEYS[1], ARGV[1], 'PX', ttl)
		else
			redis.call('SET', KEYS[1], ARGV[1])
		end
		redis.call('SADD', KEYS[2], KEYS[1])
		if ttl > 0 then
			redis.call('PEXPIRE', KEYS[2], ttl)
		end
		return 1
	`)

	// remove every entry recorded in the session index, then the index.
	clearSessionEntriesScript = redis.NewScript(`
		local keys = redis.call('SMEMBERS', KEYS[1])
		if #keys > 0 then
			redis.call('DEL', unpack(keys))
		end
		redis.call('DEL', KEYS[1])
		return #keys
	`)
}
