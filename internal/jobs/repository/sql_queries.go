package repository

const (
	createJobQuery = `INSERT INTO video_jobs (job_ref, client_identification, status, bucket, video_path, frames_path, notify_url)
					VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING *`

	updateJobQuery = `UPDATE video_jobs
					SET status = $1,
					    error_message = $2,
					    updated_at = now(),
					    inactivated_at = $3
					WHERE job_id = $4 RETURNING *`

	getJobByRefQuery = `SELECT job_id, job_ref, client_identification, status, bucket, video_path, frames_path, notify_url, error_message, created_at, updated_at, inactivated_at
					FROM video_jobs WHERE job_ref = $1`

	getJobByIDQuery = `SELECT job_id, job_ref, client_identification, status, bucket, video_path, frames_path, notify_url, error_message, created_at, updated_at, inactivated_at
					FROM video_jobs WHERE job_id = $1`

	getTotalJobsByClientQuery = `SELECT COUNT(job_id) FROM video_jobs WHERE client_identification = $1`

	getJobsByClientQuery = `SELECT job_id, job_ref, client_identification, status, bucket, video_path, frames_path, notify_url, error_message, created_at, updated_at, inactivated_at
					FROM video_jobs WHERE client_identification = $1 ORDER BY created_at DESC OFFSET $2 LIMIT $3`
)
