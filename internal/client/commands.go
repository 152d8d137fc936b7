package client

import (
	"strconv"
	"time"
)

// KeepTTL makes Set retain the existing time to live of the key
const KeepTTL time.Duration = -1

// cmdable shapes the arguments of common commands and hands them to a queue.
// Pipeline and Transaction both embed it
type cmdable func(name string, args ...string)

func (c cmdable) Ping() {
	c("PING")
}

func (c cmdable) Echo(message string) {
	c("ECHO", message)
}

func (c cmdable) Get(key string) {
	c("GET", key)
}

// Set stores value at key. A positive expiration is sent as EX when it is a whole
// number of seconds, as PX otherwise; KeepTTL sends KEEPTTL
func (c cmdable) Set(key, value string, expiration time.Duration) {
	args := []string{key, value}
	switch {
	case expiration > 0 && usePrecise(expiration):
		args = append(args, "PX", strconv.FormatInt(expiration.Milliseconds(), 10))
	case expiration > 0:
		args = append(args, "EX", strconv.FormatInt(int64(expiration/time.Second), 10))
	case expiration == KeepTTL:
		args = append(args, "KEEPTTL")
	}
	c("SET", args...)
}

func (c cmdable) SetEX(key, value string, expiration time.Duration) {
	c("SETEX", key, strconv.FormatInt(int64(expiration/time.Second), 10), value)
}

func (c cmdable) Del(keys ...string) {
	c("DEL", keys...)
}

func (c cmdable) Exists(keys ...string) {
	c("EXISTS", keys...)
}

func (c cmdable) Incr(key string) {
	c("INCR", key)
}

func (c cmdable) IncrBy(key string, n int64) {
	c("INCRBY", key, strconv.FormatInt(n, 10))
}

func (c cmdable) Decr(key string) {
	c("DECR", key)
}

func (c cmdable) Expire(key string, expiration time.Duration) {
	c("EXPIRE", key, strconv.FormatInt(int64(expiration/time.Second), 10))
}

func (c cmdable) TTL(key string) {
	c("TTL", key)
}

// HSet takes alternating field and value arguments
func (c cmdable) HSet(key string, fieldValues ...string) {
	c("HSET", append([]string{key}, fieldValues...)...)
}

func (c cmdable) HGet(key, field string) {
	c("HGET", key, field)
}

func (c cmdable) HGetAll(key string) {
	c("HGETALL", key)
}

func (c cmdable) HDel(key string, fields ...string) {
	c("HDEL", append([]string{key}, fields...)...)
}

func (c cmdable) LPush(key string, values ...string) {
	c("LPUSH", append([]string{key}, values...)...)
}

func (c cmdable) RPush(key string, values ...string) {
	c("RPUSH", append([]string{key}, values...)...)
}

func (c cmdable) LRange(key string, start, stop int64) {
	c("LRANGE", key, strconv.FormatInt(start, 10), strconv.FormatInt(stop, 10))
}

func (c cmdable) LLen(key string) {
	c("LLEN", key)
}

func (c cmdable) SAdd(key string, members ...string) {
	c("SADD", append([]string{key}, members...)...)
}

func (c cmdable) SMembers(key string) {
	c("SMEMBERS", key)
}

func usePrecise(d time.Duration) bool {
	return d < time.Second || d%time.Second != 0
}
