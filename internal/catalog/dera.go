package catalog

const (
	deraServicios = "https://www.ideandalucia.es/services/DERA_g12_servicios/wfs"
	deraEnergia   = "https://www.ideandalucia.es/services/DERA_g10_infra_energetica/wfs"
)

// Default returns the DERA layer table for the PTEL offline dataset.
func Default() *Catalog {
	return New(
		Category{
			Key:  "health",
			Name: "Centros Sanitarios",
			Layers: []Descriptor{
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_01_CentroSalud", Label: "CAP"},
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_02_Hospital_CAE", Label: "Hospitales"},
			},
		},
		Category{
			Key:  "security",
			Name: "Instalaciones de Seguridad",
			Layers: []Descriptor{
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_26_Policia", Label: "Policía"},
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_29_ParqueBomberos", Label: "Bomberos"},
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_34_GuardiaCivil", Label: "Guardia Civil"},
			},
		},
		Category{
			Key:  "education",
			Name: "Centros Educativos",
			Layers: []Descriptor{
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_05_CentroEducativo", Label: "Centros Educativos"},
			},
		},
		Category{
			Key:  "municipal",
			Name: "Servicios Municipales",
			Layers: []Descriptor{
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_32_CentrosJuntaAndalucia", Label: "Centros Junta"},
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_11_Ayuntamiento", Label: "Ayuntamientos"},
			},
		},
		Category{
			Key:  "emergency",
			Name: "Gestión de Emergencias",
			Layers: []Descriptor{
				{Endpoint: deraServicios, TypeName: "DERA_g12_servicios:g12_35_GestionEmergencias", Label: "Centros Emergencias"},
			},
		},
		Category{
			Key:  "energy",
			Name: "Infraestructuras Energéticas",
			Layers: []Descriptor{
				{Endpoint: deraEnergia, TypeName: "DERA_g10_infra_energetica:g10_02_ParqueEolico", Label: "Parques Eólicos"},
			},
		},
	)
}
