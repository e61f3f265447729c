package system

import gobridge "github.com/wippyai/gobject-bridge"

type gtype = gobridge.GType

type glibFuncs struct {
	Malloc0  func(size uintptr) ptr `ffi:"g_malloc0"`
	Free     func(p ptr)            `ffi:"g_free"`
	Strdup   func(s string) ptr     `ffi:"g_strdup"`
	Strfreev func(strv ptr)         `ffi:"g_strfreev"`

	QuarkToString   func(q uint32) ptr `ffi:"g_quark_to_string"`
	QuarkFromString func(s ptr) uint32 `ffi:"g_quark_from_string"`

	IdleAddFull          func(priority int32, fn, data, notify uintptr) uint32                  `ffi:"g_idle_add_full"`
	TimeoutAddFull       func(priority int32, interval uint32, fn, data, notify uintptr) uint32 `ffi:"g_timeout_add_full"`
	SourceRemove         func(tag uint32) bool                                                  `ffi:"g_source_remove"`
	MainContextIteration func(ctx ptr, mayBlock bool) bool                                      `ffi:"g_main_context_iteration"`
	MainLoopNew          func(ctx ptr, running bool) ptr                                        `ffi:"g_main_loop_new"`
	MainLoopRef          func(l ptr) ptr                                                        `ffi:"g_main_loop_ref"`
	MainLoopUnref        func(l ptr)                                                            `ffi:"g_main_loop_unref"`
	MainLoopRun          func(l ptr)                                                            `ffi:"g_main_loop_run"`
	MainLoopQuit         func(l ptr)                                                            `ffi:"g_main_loop_quit"`
	MainLoopIsRunning    func(l ptr) bool                                                       `ffi:"g_main_loop_is_running"`
	VariantRef           func(v ptr) ptr                                                        `ffi:"g_variant_ref"`
	VariantUnref         func(v ptr)                                                            `ffi:"g_variant_unref"`
	VariantRefSink       func(v ptr) ptr                                                        `ffi:"g_variant_ref_sink"`
	VariantIsFloating    func(v ptr) bool                                                       `ffi:"g_variant_is_floating"`
	VariantNewBoolean    func(b bool) ptr                                                       `ffi:"g_variant_new_boolean"`
	VariantNewInt32      func(i int32) ptr                                                      `ffi:"g_variant_new_int32"`
	VariantNewUint32     func(u uint32) ptr                                                     `ffi:"g_variant_new_uint32"`
	VariantNewInt64      func(i int64) ptr                                                      `ffi:"g_variant_new_int64"`
	VariantNewUint64     func(u uint64) ptr                                                     `ffi:"g_variant_new_uint64"`
	VariantNewDouble     func(d float64) ptr                                                    `ffi:"g_variant_new_double"`
	VariantNewString     func(s ptr) ptr                                                        `ffi:"g_variant_new_string"`
	VariantNewStrv       func(strv ptr, n int) ptr                                              `ffi:"g_variant_new_strv"`
	VariantGetTypeString func(v ptr) ptr                                                        `ffi:"g_variant_get_type_string"`
	VariantGetBoolean    func(v ptr) bool                                                       `ffi:"g_variant_get_boolean"`
	VariantGetInt32      func(v ptr) int32                                                      `ffi:"g_variant_get_int32"`
	VariantGetUint32     func(v ptr) uint32                                                     `ffi:"g_variant_get_uint32"`
	VariantGetInt64      func(v ptr) int64                                                      `ffi:"g_variant_get_int64"`
	VariantGetUint64     func(v ptr) uint64                                                     `ffi:"g_variant_get_uint64"`
	VariantGetDouble     func(v ptr) float64                                                    `ffi:"g_variant_get_double"`
	VariantGetString     func(v, length ptr) ptr                                                `ffi:"g_variant_get_string"`
	VariantGetStrv       func(v, length ptr) ptr                                                `ffi:"g_variant_get_strv"`
	VariantPrint         func(v ptr, annotate bool) ptr                                         `ffi:"g_variant_print"`
	VariantParse         func(typ, text, limit, endptr, errp ptr) ptr                           `ffi:"g_variant_parse"`
	VariantEqual         func(a, b ptr) bool                                                    `ffi:"g_variant_equal"`
	VariantTypeDupString func(t ptr) ptr                                                        `ffi:"g_variant_type_dup_string"`
	ErrorFree            func(e ptr)                                                            `ffi:"g_error_free"`
}

type gobjectFuncs struct {
	TypeFromName     func(name ptr) gtype    `ffi:"g_type_from_name"`
	TypeName         func(t gtype) ptr       `ffi:"g_type_name"`
	TypeIsA          func(t, isA gtype) bool `ffi:"g_type_is_a"`
	TypeFundamental  func(t gtype) gtype     `ffi:"g_type_fundamental"`
	TypeParent       func(t gtype) gtype     `ffi:"g_type_parent"`
	StrvGetType      func() gtype            `ffi:"g_strv_get_type"`
	ObjectRef        func(o ptr) ptr         `ffi:"g_object_ref"`
	ObjectUnref      func(o ptr)             `ffi:"g_object_unref"`
	ObjectRefSink    func(o ptr) ptr         `ffi:"g_object_ref_sink"`
	ObjectIsFloating func(o ptr) bool        `ffi:"g_object_is_floating"`

	ObjectClassFindProperty func(class, name ptr) ptr `ffi:"g_object_class_find_property"`
	ParamSpecGetName        func(pspec ptr) ptr       `ffi:"g_param_spec_get_name"`
	ObjectGetProperty       func(o, name, value ptr)  `ffi:"g_object_get_property"`
	ObjectSetProperty       func(o, name, value ptr)  `ffi:"g_object_set_property"`
	BoxedCopy               func(t gtype, p ptr) ptr  `ffi:"g_boxed_copy"`
	BoxedFree               func(t gtype, p ptr)      `ffi:"g_boxed_free"`

	ValueInit       func(v ptr, t gtype) ptr `ffi:"g_value_init"`
	ValueUnset      func(v ptr)              `ffi:"g_value_unset"`
	ValueGetBoolean func(v ptr) bool         `ffi:"g_value_get_boolean"`
	ValueSetBoolean func(v ptr, b bool)      `ffi:"g_value_set_boolean"`
	ValueGetInt     func(v ptr) int32        `ffi:"g_value_get_int"`
	ValueSetInt     func(v ptr, i int32)     `ffi:"g_value_set_int"`
	ValueGetUint    func(v ptr) uint32       `ffi:"g_value_get_uint"`
	ValueSetUint    func(v ptr, u uint32)    `ffi:"g_value_set_uint"`
	ValueGetInt64   func(v ptr) int64        `ffi:"g_value_get_int64"`
	ValueSetInt64   func(v ptr, i int64)     `ffi:"g_value_set_int64"`
	ValueGetUint64  func(v ptr) uint64       `ffi:"g_value_get_uint64"`
	ValueSetUint64  func(v ptr, u uint64)    `ffi:"g_value_set_uint64"`
	ValueGetDouble  func(v ptr) float64      `ffi:"g_value_get_double"`
	ValueSetDouble  func(v ptr, d float64)   `ffi:"g_value_set_double"`
	ValueGetEnum    func(v ptr) int32        `ffi:"g_value_get_enum"`
	ValueSetEnum    func(v ptr, e int32)     `ffi:"g_value_set_enum"`
	ValueGetFlags   func(v ptr) uint32       `ffi:"g_value_get_flags"`
	ValueSetFlags   func(v ptr, f uint32)    `ffi:"g_value_set_flags"`
	ValueGetString  func(v ptr) ptr          `ffi:"g_value_get_string"`
	ValueSetString  func(v, s ptr)           `ffi:"g_value_set_string"`
	ValueGetBoxed   func(v ptr) ptr          `ffi:"g_value_get_boxed"`
	ValueSetBoxed   func(v, p ptr)           `ffi:"g_value_set_boxed"`
	ValueGetObject  func(v ptr) ptr          `ffi:"g_value_get_object"`
	ValueSetObject  func(v, p ptr)           `ffi:"g_value_set_object"`
	ValueGetVariant func(v ptr) ptr          `ffi:"g_value_get_variant"`
	ValueSetVariant func(v, p ptr)           `ffi:"g_value_set_variant"`
	ValueGetPointer func(v ptr) ptr          `ffi:"g_value_get_pointer"`
	ValueGetParam   func(v ptr) ptr          `ffi:"g_value_get_param"`

	SignalParseName            func(name ptr, itype gtype, id, detail ptr, forceQuark bool) bool `ffi:"g_signal_parse_name"`
	ClosureNewSimple           func(size uint32, data uintptr) ptr                               `ffi:"g_closure_new_simple"`
	ClosureSetMetaMarshal      func(c ptr, data, marshal uintptr)                                `ffi:"g_closure_set_meta_marshal"`
	ClosureAddFinalizeNotifier func(c ptr, data, notify uintptr)                                 `ffi:"g_closure_add_finalize_notifier"`
	ClosureSink                func(c ptr)                                                       `ffi:"g_closure_sink"`
	SignalConnectClosure       func(inst, name, c ptr, after bool) uint64                        `ffi:"g_signal_connect_closure"`
	SignalHandlerDisconnect    func(inst ptr, id uint64)                                         `ffi:"g_signal_handler_disconnect"`
	SignalHandlerIsConnected   func(inst ptr, id uint64) bool                                    `ffi:"g_signal_handler_is_connected"`
	SignalHandlerBlock         func(inst ptr, id uint64)                                         `ffi:"g_signal_handler_block"`
	SignalHandlerUnblock       func(inst ptr, id uint64)                                         `ffi:"g_signal_handler_unblock"`
}

type gioFuncs struct {
	SettingsNew                   func(id ptr) ptr                           `ffi:"g_settings_new"`
	SettingsNewFull               func(schema, backend, path ptr) ptr        `ffi:"g_settings_new_full"`
	SettingsNewWithBackend        func(id, backend ptr) ptr                  `ffi:"g_settings_new_with_backend"`
	SettingsNewWithBackendAndPath func(id, backend, path ptr) ptr            `ffi:"g_settings_new_with_backend_and_path"`
	SettingsNewWithPath           func(id, path ptr) ptr                     `ffi:"g_settings_new_with_path"`
	SettingsSync                  func()                                     `ffi:"g_settings_sync"`
	SettingsBind                  func(s, key, obj, prop ptr, flags uint32)  `ffi:"g_settings_bind"`
	SettingsBindWritable          func(s, key, obj, prop ptr, inverted bool) `ffi:"g_settings_bind_writable"`
	SettingsUnbind                func(obj, prop ptr)                        `ffi:"g_settings_unbind"`
	SettingsApply                 func(s ptr)                                `ffi:"g_settings_apply"`
	SettingsDelay                 func(s ptr)                                `ffi:"g_settings_delay"`
	SettingsRevert                func(s ptr)                                `ffi:"g_settings_revert"`
	SettingsReset                 func(s, key ptr)                           `ffi:"g_settings_reset"`
	SettingsCreateAction          func(s, key ptr) ptr                       `ffi:"g_settings_create_action"`
	SettingsGetChild              func(s, name ptr) ptr                      `ffi:"g_settings_get_child"`
	SettingsListChildren          func(s ptr) ptr                            `ffi:"g_settings_list_children"`
	SettingsGetHasUnapplied       func(s ptr) bool                           `ffi:"g_settings_get_has_unapplied"`
	SettingsIsWritable            func(s, key ptr) bool                      `ffi:"g_settings_is_writable"`

	SettingsGetValue        func(s, key ptr) ptr             `ffi:"g_settings_get_value"`
	SettingsGetUserValue    func(s, key ptr) ptr             `ffi:"g_settings_get_user_value"`
	SettingsGetDefaultValue func(s, key ptr) ptr             `ffi:"g_settings_get_default_value"`
	SettingsSetValue        func(s, key, v ptr) bool         `ffi:"g_settings_set_value"`
	SettingsGetBoolean      func(s, key ptr) bool            `ffi:"g_settings_get_boolean"`
	SettingsSetBoolean      func(s, key ptr, v bool) bool    `ffi:"g_settings_set_boolean"`
	SettingsGetInt          func(s, key ptr) int32           `ffi:"g_settings_get_int"`
	SettingsSetInt          func(s, key ptr, v int32) bool   `ffi:"g_settings_set_int"`
	SettingsGetInt64        func(s, key ptr) int64           `ffi:"g_settings_get_int64"`
	SettingsSetInt64        func(s, key ptr, v int64) bool   `ffi:"g_settings_set_int64"`
	SettingsGetUint         func(s, key ptr) uint32          `ffi:"g_settings_get_uint"`
	SettingsSetUint         func(s, key ptr, v uint32) bool  `ffi:"g_settings_set_uint"`
	SettingsGetUint64       func(s, key ptr) uint64          `ffi:"g_settings_get_uint64"`
	SettingsSetUint64       func(s, key ptr, v uint64) bool  `ffi:"g_settings_set_uint64"`
	SettingsGetDouble       func(s, key ptr) float64         `ffi:"g_settings_get_double"`
	SettingsSetDouble       func(s, key ptr, v float64) bool `ffi:"g_settings_set_double"`
	SettingsGetString       func(s, key ptr) ptr             `ffi:"g_settings_get_string"`
	SettingsSetString       func(s, key, v ptr) bool         `ffi:"g_settings_set_string"`
	SettingsGetStrv         func(s, key ptr) ptr             `ffi:"g_settings_get_strv"`
	SettingsSetStrv         func(s, key, v ptr) bool         `ffi:"g_settings_set_strv"`
	SettingsGetEnum         func(s, key ptr) int32           `ffi:"g_settings_get_enum"`
	SettingsSetEnum         func(s, key ptr, v int32) bool   `ffi:"g_settings_set_enum"`
	SettingsGetFlags        func(s, key ptr) uint32          `ffi:"g_settings_get_flags"`
	SettingsSetFlags        func(s, key ptr, v uint32) bool  `ffi:"g_settings_set_flags"`

	SchemaSourceGetDefault       func() ptr                                        `ffi:"g_settings_schema_source_get_default"`
	SchemaSourceNewFromDirectory func(dir, parent ptr, trusted bool, errp ptr) ptr `ffi:"g_settings_schema_source_new_from_directory"`
	SchemaSourceRef              func(src ptr) ptr                                 `ffi:"g_settings_schema_source_ref"`
	SchemaSourceUnref            func(src ptr)                                     `ffi:"g_settings_schema_source_unref"`
	SchemaSourceLookup           func(src, id ptr, recursive bool) ptr             `ffi:"g_settings_schema_source_lookup"`
	SchemaSourceListSchemas      func(src ptr, recursive bool, fixed, reloc ptr)   `ffi:"g_settings_schema_source_list_schemas"`

	SchemaRef          func(s ptr) ptr        `ffi:"g_settings_schema_ref"`
	SchemaUnref        func(s ptr)            `ffi:"g_settings_schema_unref"`
	SchemaGetID        func(s ptr) ptr        `ffi:"g_settings_schema_get_id"`
	SchemaGetPath      func(s ptr) ptr        `ffi:"g_settings_schema_get_path"`
	SchemaHasKey       func(s, name ptr) bool `ffi:"g_settings_schema_has_key"`
	SchemaGetKey       func(s, name ptr) ptr  `ffi:"g_settings_schema_get_key"`
	SchemaListKeys     func(s ptr) ptr        `ffi:"g_settings_schema_list_keys"`
	SchemaListChildren func(s ptr) ptr        `ffi:"g_settings_schema_list_children"`

	SchemaKeyRef            func(k ptr) ptr     `ffi:"g_settings_schema_key_ref"`
	SchemaKeyUnref          func(k ptr)         `ffi:"g_settings_schema_key_unref"`
	SchemaKeyGetName        func(k ptr) ptr     `ffi:"g_settings_schema_key_get_name"`
	SchemaKeyGetSummary     func(k ptr) ptr     `ffi:"g_settings_schema_key_get_summary"`
	SchemaKeyGetDescription func(k ptr) ptr     `ffi:"g_settings_schema_key_get_description"`
	SchemaKeyGetValueType   func(k ptr) ptr     `ffi:"g_settings_schema_key_get_value_type"`
	SchemaKeyGetDefault     func(k ptr) ptr     `ffi:"g_settings_schema_key_get_default_value"`
	SchemaKeyRangeCheck     func(k, v ptr) bool `ffi:"g_settings_schema_key_range_check"`

	MemoryBackendNew  func() ptr `ffi:"g_memory_settings_backend_new"`
	NullBackendNew    func() ptr `ffi:"g_null_settings_backend_new"`
	BackendGetDefault func() ptr `ffi:"g_settings_backend_get_default"`

	ActionGetName     func(a ptr) ptr  `ffi:"g_action_get_name"`
	ActionGetEnabled  func(a ptr) bool `ffi:"g_action_get_enabled"`
	ActionGetState    func(a ptr) ptr  `ffi:"g_action_get_state"`
	ActionActivate    func(a, p ptr)   `ffi:"g_action_activate"`
	ActionChangeState func(a, v ptr)   `ffi:"g_action_change_state"`
}

type gtkFuncs struct {
	InitCheck            func(argc, argv ptr) bool `ffi:"gtk_init_check"`
	CellRendererTextNew  func() ptr                `ffi:"gtk_cell_renderer_text_new"`
	CellRendererComboNew func() ptr                `ffi:"gtk_cell_renderer_combo_new"`

	ListStoreNewv     func(n int32, types ptr) ptr            `ffi:"gtk_list_store_newv"`
	ListStoreAppend   func(store, iter ptr)                   `ffi:"gtk_list_store_append"`
	ListStoreSetValue func(store, iter ptr, col int32, v ptr) `ffi:"gtk_list_store_set_value"`
	ListStoreClear    func(store ptr)                         `ffi:"gtk_list_store_clear"`

	TreeModelGetNColumns   func(m ptr) int32                   `ffi:"gtk_tree_model_get_n_columns"`
	TreeModelGetColumnType func(m ptr, col int32) gtype        `ffi:"gtk_tree_model_get_column_type"`
	TreeModelGetValue      func(m, iter ptr, col int32, v ptr) `ffi:"gtk_tree_model_get_value"`
	TreeModelIterNChildren func(m, iter ptr) int32             `ffi:"gtk_tree_model_iter_n_children"`
	TreeModelGetIter       func(m, iter, path ptr) bool        `ffi:"gtk_tree_model_get_iter"`
	TreeModelGetPath       func(m, iter ptr) ptr               `ffi:"gtk_tree_model_get_path"`

	TreePathNewFromString func(s ptr) ptr   `ffi:"gtk_tree_path_new_from_string"`
	TreePathToString      func(p ptr) ptr   `ffi:"gtk_tree_path_to_string"`
	TreePathGetDepth      func(p ptr) int32 `ffi:"gtk_tree_path_get_depth"`
	TreePathGetIndices    func(p ptr) ptr   `ffi:"gtk_tree_path_get_indices"`
	TreePathCopy          func(p ptr) ptr   `ffi:"gtk_tree_path_copy"`
	TreePathFree          func(p ptr)       `ffi:"gtk_tree_path_free"`

	TreeIterCopy func(it ptr) ptr `ffi:"gtk_tree_iter_copy"`
	TreeIterFree func(it ptr)     `ffi:"gtk_tree_iter_free"`
}
