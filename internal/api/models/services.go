package models

import "time"

// RegisterServiceRequest asks the engine to advertise a service.
type RegisterServiceRequest struct {
	Name string `json:"name" binding:"required"`
	Type string `json:"type"`
	Port int    `json:"port" binding:"required,min=1,max=65535"`
}

// ServiceInfoResponse describes a registered service.
type ServiceInfoResponse struct {
	ServiceName string `json:"service_name"`
	Type        string `json:"type"`
	Domain      string `json:"domain"`
	Port        int    `json:"port"`
}

// ServiceInstanceResponse is one peer found by browsing.
type ServiceInstanceResponse struct {
	ServiceType  string `json:"service_type"`
	InstanceName string `json:"instance_name"`
	DomainName   string `json:"domain_name"`
	IPAddress    string `json:"ip_address"`
	Port         int    `json:"port"`
}

// BrowseResponse lists the instances of a service type.
type BrowseResponse struct {
	Type      string                    `json:"type"`
	Instances []ServiceInstanceResponse `json:"instances"`
	Count     int                       `json:"count"`
}

// AdvertisedServiceResponse is a persisted service this host advertises.
type AdvertisedServiceResponse struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Port      int       `json:"port"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordResponse is one record in the local store.
type RecordResponse struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Class uint16 `json:"class"`
	TTL   uint32 `json:"ttl"`
	Data  string `json:"data"`
}

// RecordsResponse lists the local store.
type RecordsResponse struct {
	Records []RecordResponse `json:"records"`
	Count   int              `json:"count"`
}
