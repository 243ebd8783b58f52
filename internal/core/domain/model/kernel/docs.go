// Package kernel contains the shared value objects of the courier domain:
// geographic locations with geodesic distance, GPS positions and UUID
// identifiers. All types are immutable, validated on construction and safe
// to pass by value.
package kernel
