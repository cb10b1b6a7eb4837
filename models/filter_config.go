package models

// FilterConfig — созданная во внешнем сервисе DNS-конфигурация фильтрации.
// DNSServers прописываются на устройстве ребенка.
type FilterConfig struct {
	ID         string   `json:"id"`
	DNSServers []string `json:"dns_servers"`
}
