package store

const sqlNextID = `SELECT seq FROM sqlite_sequence WHERE name = ?`

const (
	sqlSelectSaves = `SELECT id, level_index, name, timestamp, guid FROM save ORDER BY id`
	sqlSelectSave  = `SELECT id, level_index, name, timestamp, guid FROM save WHERE id = ?`
	sqlSelectGUID  = `SELECT id, level_index, name, timestamp, guid FROM save WHERE guid = ?`
	sqlInsertSave  = `INSERT INTO save (id, level_index, name, timestamp, guid) VALUES (?, ?, ?, ?, ?)`
	sqlUpdateSave  = `UPDATE save SET level_index = ?, name = ?, timestamp = ? WHERE id = ?`
	sqlDeleteSave  = `DELETE FROM save WHERE id = ?`
)

const (
	sqlSelectPlayer = `SELECT id, save_id, facemask_count, ammo_count, has_gun, x, y, spawn_x, spawn_y
		FROM player WHERE save_id = ? ORDER BY id LIMIT 1`
	sqlInsertPlayer = `INSERT INTO player
		(save_id, facemask_count, ammo_count, has_gun, x, y, spawn_x, spawn_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	sqlUpdatePlayer = `UPDATE player SET
		facemask_count = ?, ammo_count = ?, has_gun = ?, x = ?, y = ?, spawn_x = ?, spawn_y = ?
		WHERE id = ?`
	sqlDeletePlayers = `DELETE FROM player WHERE save_id = ?`
)

const (
	sqlSelectEnemies = `SELECT id, ingame_id, save_id, level_index, health, is_dead, x, y
		FROM enemy WHERE save_id = ? ORDER BY id`
	sqlInsertEnemy = `INSERT INTO enemy
		(ingame_id, save_id, level_index, health, is_dead, x, y)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	sqlUpdateEnemy   = `UPDATE enemy SET health = ?, is_dead = ?, x = ?, y = ? WHERE id = ?`
	sqlDeleteEnemy   = `DELETE FROM enemy WHERE id = ?`
	sqlDeleteEnemies = `DELETE FROM enemy WHERE save_id = ?`
)

const (
	sqlSelectItems = `SELECT id, ingame_id, save_id, level_index, collected, x, y
		FROM item WHERE save_id = ? ORDER BY id`
	sqlInsertItem = `INSERT INTO item
		(ingame_id, save_id, level_index, collected, x, y)
		VALUES (?, ?, ?, ?, ?, ?)`
	sqlUpdateItem  = `UPDATE item SET collected = ?, x = ?, y = ? WHERE id = ?`
	sqlDeleteItem  = `DELETE FROM item WHERE id = ?`
	sqlDeleteItems = `DELETE FROM item WHERE save_id = ?`
)
