package domain

import "strings"

// NormalizeShopDomain strips a leading http/https scheme and any trailing
// slash from a shop domain, so "https://my-shop.myshopify.com/" and
// "my-shop.myshopify.com" resolve to the same credential records.
func NormalizeShopDomain(shop string) string {
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	return strings.TrimSuffix(shop, "/")
}
