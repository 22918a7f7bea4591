package response

// Centralized response messages to avoid magic strings in handlers.
const (
	MsgSuccess = "Success"
	MsgCreated = "Created successfully"
	MsgUpdated = "Updated successfully"
	MsgDeleted = "Deleted successfully"

	MsgUserRegistered = "User registered successfully"
	MsgLoginSuccess   = "Login successful"
	MsgTokenRefreshed = "Token refreshed successfully"

	MsgUserProfileRetrieved = "User profile retrieved"
	MsgUserProfileUpdated   = "User profile updated"

	MsgProjectCreated          = "Project created successfully"
	MsgProjectUpdated          = "Project updated successfully"
	MsgProjectDeleted          = "Project deleted successfully"
	MsgProjectRetrieved        = "Project retrieved"
	MsgProjectListRetrieved    = "Projects retrieved"
	MsgProjectMemberAdded      = "Member added to project successfully"
	MsgProjectMemberRemoved    = "Member removed from project successfully"
	MsgProjectMembersRetrieved = "Project members retrieved"

	MsgTaskCreated       = "Task created successfully"
	MsgTaskUpdated       = "Task updated successfully"
	MsgTaskDeleted       = "Task deleted successfully"
	MsgTaskRetrieved     = "Task retrieved"
	MsgTaskListRetrieved = "Tasks retrieved"
	MsgTaskStatusUpdated = "Task status updated"

	MsgCommentAdded      = "Comment added successfully"
	MsgCommentsRetrieved = "Comments retrieved successfully"

	MsgAttachmentUploaded   = "Attachment uploaded successfully"
	MsgAttachmentsRetrieved = "Attachments retrieved successfully"

	MsgReportRetrieved = "Report generated successfully"

	MsgAPIHealthy      = "API is healthy"
	MsgDatabaseHealthy = "Database connection is healthy"

	MsgInternalError   = "Internal server error"
	MsgDatabaseError   = "Database error"
	MsgValidationError = "Validation error"
	MsgNotFound        = "Resource not found"
	MsgConflict        = "Resource conflict"
	MsgTooManyRequests = "Too many requests. Please try again later."
	MsgBodyTooLarge    = "Request body too large"
)
