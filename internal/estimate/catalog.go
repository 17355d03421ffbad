package estimate

// ProjectType identifies a renovation project in the catalog.
type ProjectType string

const (
	ProjectBathroom          ProjectType = "Bathroom"
	ProjectKitchen           ProjectType = "Kitchen"
	ProjectRoof              ProjectType = "Roof Replacement"
	ProjectWindows           ProjectType = "Window Replacement"
	ProjectGarageDoor        ProjectType = "Garage Door Replacement"
	ProjectDeck              ProjectType = "Deck Addition"
	ProjectAtticInsulation   ProjectType = "Attic Insulation"
	ProjectSiding            ProjectType = "Siding Replacement"
	ProjectRoomAddition      ProjectType = "Room Addition"
	ProjectAccessoryDwelling ProjectType = "Accessory Dwelling Unit"
	ProjectADU               ProjectType = "ADU"
	ProjectLandscaping       ProjectType = "Landscaping"
	ProjectSolar             ProjectType = "Solar Panel Installation"
)

// Catalog is the ordered list of project types offered to users.
// "ADU" is kept as its own key; it is not folded into "Accessory Dwelling Unit".
var Catalog = []ProjectType{
	ProjectBathroom,
	ProjectKitchen,
	ProjectRoof,
	ProjectWindows,
	ProjectGarageDoor,
	ProjectDeck,
	ProjectAtticInsulation,
	ProjectSiding,
	ProjectRoomAddition,
	ProjectAccessoryDwelling,
	ProjectADU,
	ProjectLandscaping,
	ProjectSolar,
}

// InCatalog reports whether p is one of catalog's entries.
func InCatalog(catalog []ProjectType, p ProjectType) bool {
	for _, c := range catalog {
		if c == p {
			return true
		}
	}
	return false
}

// CatalogNames returns catalog as plain strings, e.g. for select options.
func CatalogNames(catalog []ProjectType) []string {
	names := make([]string, len(catalog))
	for i, p := range catalog {
		names[i] = string(p)
	}
	return names
}
