package botconfig

// Keys the bot reads. Anything else may still be stored through SetMany.
var TextKeys = []string{
	"welcome_menu_msg",
	"text_submit_ok",
	"text_submit_fail",
	"text_result_prefix",
	"text_price_note",
	"btn_menu_print",
	"btn_menu_scan",
	"btn_menu_idea",
	"btn_menu_about",
	"text_print_tech",
	"btn_print_fdm",
	"btn_print_resin",
	"btn_print_unknown",
	"text_select_material",
	"text_select_material_fdm",
	"text_select_material_resin",
	"text_select_material_unknown",
	"btn_mat_petg",
	"btn_mat_pla",
	"btn_mat_petg_carbon",
	"btn_mat_tpu",
	"btn_mat_nylon",
	"btn_mat_other",
	"btn_resin_standard",
	"btn_resin_abs",
	"btn_resin_tpu",
	"btn_resin_nylon",
	"btn_resin_other",
	"text_describe_material",
	"text_attach_file",
	"text_describe_task",
	"text_scan_type",
	"btn_scan_human",
	"btn_scan_object",
	"btn_scan_industrial",
	"btn_scan_other",
	"text_idea_type",
	"btn_idea_photo",
	"btn_idea_award",
	"btn_idea_master",
	"btn_idea_sign",
	"btn_idea_other",
	"about_text",
	"btn_about_equipment",
	"btn_about_projects",
	"btn_about_contacts",
	"btn_about_map",
	"about_equipment_text",
	"about_projects_text",
	"about_contacts_text",
	"about_map_text",
}

var PhotoKeys = []string{
	"photo_main_menu",
	"photo_print",
	"photo_print_fdm",
	"photo_print_resin",
	"photo_scan",
	"photo_idea",
	"photo_about",
	"photo_about_equipment",
	"photo_about_projects",
	"photo_about_contacts",
	"photo_about_map",
}

// ToggleKeys switch menu entries on and off. Unset means enabled.
var ToggleKeys = []string{
	"enabled_menu_print",
	"enabled_menu_scan",
	"enabled_menu_idea",
	"enabled_menu_about",
	"enabled_print_fdm",
	"enabled_print_resin",
	"enabled_print_unknown",
	"enabled_scan_human",
	"enabled_scan_object",
	"enabled_scan_industrial",
	"enabled_scan_other",
	"enabled_idea_photo",
	"enabled_idea_award",
	"enabled_idea_master",
	"enabled_idea_sign",
	"enabled_idea_other",
	"enabled_about_equipment",
	"enabled_about_projects",
	"enabled_about_contacts",
	"enabled_about_map",
}

var plainSettingKeys = []string{
	"orders_chat_id",
	"manager_username",
	"placeholder_photo_path",
}

// SettingsKeys are the keys of the settings view: plain settings, toggles and photos.
func SettingsKeys() []string {
	keys := make([]string, 0, len(plainSettingKeys)+len(ToggleKeys)+len(PhotoKeys))
	keys = append(keys, plainSettingKeys...)
	keys = append(keys, ToggleKeys...)
	keys = append(keys, PhotoKeys...)
	return keys
}

func isToggle(key string) bool {
	for _, k := range ToggleKeys {
		if k == key {
			return true
		}
	}
	return false
}
