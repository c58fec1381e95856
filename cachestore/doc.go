// Caching of upstream lookups (account profiles, community metadata) as JSON strings with a fixed TTL and purging.
//
// Includes an interface and implementations using redis and in-process memory. The scoring and analysis packages never touch a cache; only the command-line tool and HTTP daemon do.
package cachestore
