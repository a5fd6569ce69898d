package constants

const (
	ViewAssets        = "view_assets"
	ManageAssets      = "manage_assets"
	ImportAssets      = "import_assets"
	AssignAsset       = "assign_asset"
	TransitionCustody = "transition_custody"
	RecordMaintenance = "record_maintenance"
)
